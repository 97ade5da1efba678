package resale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbmap/geoquery/v1/filters"
)

func ptr[T any](v T) *T { return &v }

func TestRequest_FilterSpec(t *testing.T) {
	req := Request{
		Town:         []string{"BISHAN"},
		FlatType:     []string{},
		YearRangeGte: ptr(2019.0),
		MinPsf:       ptr(400.0),
		MaxPsf:       ptr(600.0),
		Postal:       ptr("570150"),
		Limit:        ptr(10),
	}

	spec := req.FilterSpec()

	assert.Equal(t, filters.RangeBounds{Gte: 2019.0}, spec.Ranges[YearRange])
	assert.Equal(t, filters.RangeBounds{Gte: 400.0, Lte: 600.0}, spec.Ranges[PsfRange])
	assert.NotContains(t, spec.Ranges, LatRange)
	assert.Equal(t, []string{"BISHAN"}, spec.Categories[TownsFilter])
	assert.Equal(t, []string{}, spec.Categories[FlatTypesFilter])
	assert.Equal(t, "570150", spec.Fields["postal"])
	assert.Equal(t, 10, *spec.Limit)
}

func TestRequest_CompilesAgainstRecordsSchema(t *testing.T) {
	req := Request{Town: []string{"BISHAN"}, MinPsf: ptr(400.0), MaxPsf: ptr(600.0)}

	q, err := filters.AssembleQuery(req.FilterSpec(), RecordsSchema(filters.RejectUnknown))
	require.NoError(t, err)

	town, ok := q.Predicate.Get("town")
	require.True(t, ok)
	assert.Equal(t, filters.Equality{Value: "BISHAN"}, town)

	psf, ok := q.Predicate.Get("Psf")
	require.True(t, ok)
	assert.Equal(t, filters.Comparison{Gte: 400.0, Lte: 600.0}, psf)
	assert.Nil(t, q.Limit)
}

func TestRequest_MembershipAndEmptyList(t *testing.T) {
	req := Request{Town: []string{"BISHAN", "TAMPINES"}, FlatType: []string{}}

	q, err := filters.AssembleQuery(req.FilterSpec(), RecordsSchema(filters.RejectUnknown))
	require.NoError(t, err)

	assert.Equal(t, []string{"town"}, q.Predicate.Fields())
	town, _ := q.Predicate.Get("town")
	assert.Equal(t, filters.Membership{Values: []string{"BISHAN", "TAMPINES"}}, town)
}

func TestRequest_YearRangeUnknownToListings(t *testing.T) {
	req := Request{YearRangeGte: ptr(2019.0)}

	_, err := filters.AssembleQuery(req.FilterSpec(), ListingsSchema(filters.RejectUnknown))
	require.Error(t, err)
	assert.True(t, filters.IsUnknownFilterField(err))
	field, ok := filters.FieldOf(err)
	assert.True(t, ok)
	assert.Equal(t, YearRange, field)
}

func TestSchemas_Validate(t *testing.T) {
	assert.NoError(t, RecordsSchema(filters.RejectUnknown).Validate())
	assert.NoError(t, ListingsSchema(filters.PassUnknown).Validate())
}
