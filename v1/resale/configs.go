package resale

// Config holds the collection names and read defaults of the service.
type Config struct {
	RecordsCollection  string `yaml:"records_collection" env:"RESALE_RECORDS_COLLECTION,overwrite"`
	ListingsCollection string `yaml:"listings_collection" env:"RESALE_LISTINGS_COLLECTION,overwrite"`

	// ApplyDefaultLimits fills in DefaultRecordsLimit and DefaultListingsLimit
	// for searches that carry no limit.
	ApplyDefaultLimits   bool `yaml:"apply_default_limits" env:"RESALE_APPLY_DEFAULT_LIMITS,overwrite"`
	DefaultRecordsLimit  int  `yaml:"default_records_limit" env:"RESALE_DEFAULT_RECORDS_LIMIT,overwrite"`
	DefaultListingsLimit int  `yaml:"default_listings_limit" env:"RESALE_DEFAULT_LISTINGS_LIMIT,overwrite"`

	// LatestPostalsScan caps the records scanned by GetLatestPostals and
	// LatestPostalsLimit caps the postal codes it returns.
	LatestPostalsScan  int `yaml:"latest_postals_scan" env:"RESALE_LATEST_POSTALS_SCAN,overwrite"`
	LatestPostalsLimit int `yaml:"latest_postals_limit" env:"RESALE_LATEST_POSTALS_LIMIT,overwrite"`

	// UnknownFields is "reject" or "pass".
	UnknownFields string `yaml:"unknown_fields" env:"RESALE_UNKNOWN_FIELDS,overwrite"`
}

// DefaultConfig matches the collections of the hdbData database.
func DefaultConfig() Config {
	return Config{
		RecordsCollection:    "cleanedResale",
		ListingsCollection:   "listingsData",
		ApplyDefaultLimits:   true,
		DefaultRecordsLimit:  300,
		DefaultListingsLimit: 80,
		LatestPostalsScan:    1000,
		LatestPostalsLimit:   100,
		UnknownFields:        "reject",
	}
}
