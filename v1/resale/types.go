package resale

import (
	"time"
)

// BucketAggregate is one point of the average price series.
type BucketAggregate struct {
	BucketKey      string  `json:"bucketKey"`
	AggregateValue float64 `json:"aggregateValue"`
}

// FilterOptions are the values offered by the town and flat type filters.
type FilterOptions struct {
	Towns     []string `json:"towns"`
	FlatTypes []string `json:"flatTypes"`
}

// Record is the relational layout of one resale transaction.
type Record struct {
	ID           string    `gorm:"column:_id;primaryKey" json:"_id"`
	Year         int       `gorm:"column:year;index" json:"year"`
	Month        int       `gorm:"column:month" json:"month"`
	Lng          float64   `gorm:"column:lng" json:"lng"`
	Lat          float64   `gorm:"column:lat" json:"lat"`
	Date         time.Time `gorm:"column:date;index" json:"date"`
	Sqft         float64   `gorm:"column:Sqft" json:"Sqft"`
	Psf          float64   `gorm:"column:Psf" json:"Psf"`
	Town         string    `gorm:"column:town;index" json:"town"`
	FlatType     string    `gorm:"column:flat_type" json:"flat_type"`
	Postal       string    `gorm:"column:postal;index" json:"postal"`
	Block        string    `gorm:"column:block" json:"block"`
	StreetName   string    `gorm:"column:street_name" json:"street_name"`
	Address      string    `gorm:"column:address" json:"address"`
	ResalePrice  float64   `gorm:"column:resale_price" json:"resale_price"`
	FloorAreaSqm float64   `gorm:"column:floor_area_sqm" json:"floor_area_sqm"`
}

// Listing is the relational layout of one current listing.
type Listing struct {
	ID       string  `gorm:"column:_id;primaryKey" json:"_id"`
	Lon      float64 `gorm:"column:Lon" json:"Lon"`
	Lat      float64 `gorm:"column:Lat" json:"Lat"`
	Sqft     float64 `gorm:"column:Sqft" json:"Sqft"`
	Psf      float64 `gorm:"column:Psf" json:"Psf"`
	Town     string  `gorm:"column:town;index" json:"town"`
	FlatType string  `gorm:"column:flat_type" json:"flat_type"`
	Address  string  `gorm:"column:Address" json:"Address"`
	Price    float64 `gorm:"column:Price" json:"Price"`
	HDBType  string  `gorm:"column:HDBType" json:"HDBType"`
	URL      string  `gorm:"column:URL" json:"URL"`
}

// Tables returns the relational model of each collection named in cfg.
func Tables(cfg Config) map[string]interface{} {
	return map[string]interface{}{
		cfg.RecordsCollection:  &Record{},
		cfg.ListingsCollection: &Listing{},
	}
}
