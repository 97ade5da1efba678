package resale

import (
	"github.com/hdbmap/geoquery/v1/filters"
)

// Request is the filter body sent by the map front end. Absent bounds and
// empty lists do not filter.
type Request struct {
	Town     []string `json:"town,omitempty"`
	FlatType []string `json:"flatType,omitempty"`

	YearRangeGte *float64 `json:"yearRangeGte,omitempty"`
	YearRangeLte *float64 `json:"yearRangeLte,omitempty"`

	DateRangeGte *string `json:"dateRangeGte,omitempty"`
	DateRangeLte *string `json:"dateRangeLte,omitempty"`

	LatRangeGte *float64 `json:"latRangeGte,omitempty"`
	LatRangeLte *float64 `json:"latRangeLte,omitempty"`
	LonRangeGte *float64 `json:"lonRangeGte,omitempty"`
	LonRangeLte *float64 `json:"lonRangeLte,omitempty"`

	MinPsf *float64 `json:"minPsf,omitempty"`
	MaxPsf *float64 `json:"maxPsf,omitempty"`
	MinSqf *float64 `json:"minSqf,omitempty"`
	MaxSqf *float64 `json:"maxSqf,omitempty"`

	Postal  *string `json:"postal,omitempty"`
	HDBType *string `json:"hdbType,omitempty"`

	Limit *int `json:"limit,omitempty"`
}

// FilterSpec converts r to the logical filters of RecordsSchema and
// ListingsSchema. Filters a collection does not know are rejected when the
// spec is compiled.
func (r Request) FilterSpec() filters.FilterSpec {
	spec := filters.FilterSpec{
		Ranges:     map[string]filters.RangeBounds{},
		Categories: map[string][]string{},
		Fields:     map[string]any{},
		Limit:      r.Limit,
	}

	addRange(spec.Ranges, YearRange, r.YearRangeGte, r.YearRangeLte)
	addRange(spec.Ranges, LatRange, r.LatRangeGte, r.LatRangeLte)
	addRange(spec.Ranges, LonRange, r.LonRangeGte, r.LonRangeLte)
	addRange(spec.Ranges, PsfRange, r.MinPsf, r.MaxPsf)
	addRange(spec.Ranges, SqfRange, r.MinSqf, r.MaxSqf)
	addRange(spec.Ranges, DateRange, r.DateRangeGte, r.DateRangeLte)

	if r.Town != nil {
		spec.Categories[TownsFilter] = r.Town
	}
	if r.FlatType != nil {
		spec.Categories[FlatTypesFilter] = r.FlatType
	}

	if r.Postal != nil {
		spec.Fields[fieldPostal] = *r.Postal
	}
	if r.HDBType != nil {
		spec.Fields["HDBType"] = *r.HDBType
	}
	return spec
}

func addRange[T any](ranges map[string]filters.RangeBounds, name string, gte, lte *T) {
	var bounds filters.RangeBounds
	if gte != nil {
		bounds.Gte = *gte
	}
	if lte != nil {
		bounds.Lte = *lte
	}
	if !bounds.IsZero() {
		ranges[name] = bounds
	}
}
