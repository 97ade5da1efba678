package resale

import (
	"github.com/hdbmap/geoquery/v1/filters"
)

// Logical filter names shared by both collections.
const (
	TownsFilter     = "towns"
	FlatTypesFilter = "flatTypes"
	YearRange       = "yearRange"
	MonthRange      = "monthRange"
	DateRange       = "dateRange"
	LatRange        = "latRange"
	LonRange        = "lonRange"
	PsfRange        = "psfRange"
	SqfRange        = "sqfRange"
)

// Document fields read by the service itself.
const (
	fieldDate     = "date"
	fieldPostal   = "postal"
	fieldPsf      = "Psf"
	fieldTown     = "town"
	fieldFlatType = "flat_type"
)

// TemporalFields are the record fields holding dates.
var TemporalFields = []string{fieldDate}

// RecordsSchema maps the filters of resale transactions onto cleanedResale.
func RecordsSchema(policy filters.UnknownFieldPolicy) filters.Schema {
	return filters.Schema{
		Name: "records",
		Ranges: map[string]filters.RangeField{
			YearRange:  {Target: "year"},
			MonthRange: {Target: "month"},
			LonRange:   {Target: "lng"},
			LatRange:   {Target: "lat"},
			DateRange:  {Target: fieldDate, Temporal: true},
			SqfRange:   {Target: "Sqft"},
			PsfRange:   {Target: fieldPsf},
		},
		Categories: map[string]string{
			TownsFilter:     fieldTown,
			FlatTypesFilter: fieldFlatType,
		},
		PassThrough: []string{fieldPostal, "block", "street_name"},
		Fields: []string{
			"_id", "year", "month", "lng", "lat", fieldDate, "Sqft", fieldPsf, fieldTown,
			fieldFlatType, fieldPostal, "block", "street_name", "address", "resale_price",
			"floor_area_sqm",
		},
		RecencyField:  fieldDate,
		UnknownFields: policy,
	}
}

// ListingsSchema maps the filters of current listings onto listingsData.
func ListingsSchema(policy filters.UnknownFieldPolicy) filters.Schema {
	return filters.Schema{
		Name: "listings",
		Ranges: map[string]filters.RangeField{
			LonRange: {Target: "Lon"},
			LatRange: {Target: "Lat"},
			SqfRange: {Target: "Sqft"},
			PsfRange: {Target: fieldPsf},
		},
		Categories: map[string]string{
			TownsFilter:     fieldTown,
			FlatTypesFilter: fieldFlatType,
		},
		PassThrough: []string{"HDBType"},
		Fields: []string{
			"_id", "Lon", "Lat", "Sqft", fieldPsf, fieldTown, fieldFlatType, "Address",
			"Price", "HDBType", "URL",
		},
		UnknownFields: policy,
	}
}
