package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// QueryBuilder turns compiled predicates and pipelines into GORM queries
// against one table.
type QueryBuilder struct {
	db    *gorm.DB
	table string
}

// aggregateQuery is a built pipeline plus the post-processing its rows need.
type aggregateQuery struct {
	db *gorm.DB
	// wrapAs nests each row under this field with its key as _id. Empty
	// returns rows unchanged.
	wrapAs string
	key    string
}

func newQueryBuilder(db *gorm.DB, table string) *QueryBuilder {
	return &QueryBuilder{db: db, table: table}
}

func column(name string) clause.Column {
	return clause.Column{Name: name}
}

// conditionExpression renders one predicate entry.
func conditionExpression(field string, cond filters.Condition) (clause.Expression, error) {
	col := column(field)
	switch c := cond.(type) {
	case filters.Equality:
		return clause.Eq{Column: col, Value: c.Value}, nil
	case filters.Membership:
		values := make([]interface{}, len(c.Values))
		for i, v := range c.Values {
			values[i] = v
		}
		return clause.IN{Column: col, Values: values}, nil
	case filters.Comparison:
		var exprs []clause.Expression
		if c.Gte != nil {
			exprs = append(exprs, clause.Gte{Column: col, Value: c.Gte})
		}
		if c.Lte != nil {
			exprs = append(exprs, clause.Lte{Column: col, Value: c.Lte})
		}
		if len(exprs) == 0 {
			return nil, fmt.Errorf("%w: comparison without bounds on %q", filters.ErrInvalidPipeline, field)
		}
		return clause.And(exprs...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported condition %T", filters.ErrInvalidPipeline, cond)
	}
}

func applyPredicate(db *gorm.DB, predicate filters.CompiledPredicate) (*gorm.DB, error) {
	for _, e := range predicate.Entries() {
		expr, err := conditionExpression(e.Field, e.Condition)
		if err != nil {
			return nil, err
		}
		db = db.Where(expr)
	}
	return db, nil
}

func applyOrder(db *gorm.DB, keys []filters.SortKey) *gorm.DB {
	for _, k := range keys {
		db = db.Order(clause.OrderByColumn{Column: column(k.Field), Desc: k.Descending})
	}
	return db
}

// Find builds a filtered read, newest first by sort when given.
func (qb *QueryBuilder) Find(predicate filters.CompiledPredicate, opts recordsource.FindOptions) (*gorm.DB, error) {
	db, err := applyPredicate(qb.db.Table(qb.table), predicate)
	if err != nil {
		return nil, err
	}
	if opts.Sort != "" {
		db = db.Order(clause.OrderByColumn{Column: column(opts.Sort), Desc: true})
	}
	if opts.Limit != nil {
		db = db.Limit(*opts.Limit)
	}
	return db, nil
}

// ByID builds a lookup of one row by _id.
func (qb *QueryBuilder) ByID(id string) *gorm.DB {
	return qb.db.Table(qb.table).Where(clause.Eq{Column: column(recordsource.IDField), Value: id})
}

// Distinct builds a query for the sorted distinct non-null values of field
// as text, in a column named "value".
func (qb *QueryBuilder) Distinct(field string) *gorm.DB {
	col := column(field)
	return qb.db.Table(qb.table).
		Select("DISTINCT CAST(? AS TEXT) AS value", col).
		Where("? IS NOT NULL", col).
		Order(clause.OrderByColumn{Column: column("value")})
}

var sqlAggregates = map[filters.Accumulator]string{
	filters.AccAvg: "AVG",
	filters.AccSum: "SUM",
	filters.AccMin: "MIN",
	filters.AccMax: "MAX",
}

// Aggregate builds one SELECT for pipeline. The pipeline must be valid.
func (qb *QueryBuilder) Aggregate(pipeline filters.Pipeline) (*aggregateQuery, error) {
	src := qb.db.Table(qb.table)
	stages := []filters.Stage(pipeline)

	if limit, ok := stages[0].(filters.LimitStage); ok {
		src = qb.db.Table("(?) AS limited", qb.db.Table(qb.table).Limit(limit.N))
		stages = stages[1:]
	}

	var preSort []filters.SortKey
	var group filters.GroupStage
	i := 0
	for ; i < len(stages); i++ {
		switch st := stages[i].(type) {
		case filters.MatchStage:
			expr, err := conditionExpression(st.Field, st.Condition)
			if err != nil {
				return nil, err
			}
			src = src.Where(expr)
			continue
		case filters.SortStage:
			preSort = append(preSort, st.Keys...)
			continue
		case filters.GroupStage:
			group = st
		default:
			return nil, fmt.Errorf("%w: unexpected %s stage before group", filters.ErrInvalidPipeline, st.Kind())
		}
		break
	}

	q, err := qb.group(src, group, preSort)
	if err != nil {
		return nil, err
	}
	q.key = group.Key

	var postSort []filters.SortKey
	for _, stage := range stages[i+1:] {
		switch st := stage.(type) {
		case filters.ReplaceRootStage:
			if group.Accumulator != filters.AccFirst || group.Field != "" || st.Field != group.As {
				return nil, fmt.Errorf("%w: replaceRoot needs a whole-document group on %q", filters.ErrInvalidPipeline, st.Field)
			}
			q.wrapAs = ""
		case filters.SortStage:
			for _, k := range st.Keys {
				// unwrapped rows still carry the key under its own name
				if q.wrapAs != "" && k.Field == filters.GroupKeyField {
					k.Field = group.Key
				}
				postSort = append(postSort, k)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %s stage after group", filters.ErrInvalidPipeline, st.Kind())
		}
	}

	if len(postSort) > 0 {
		q.db = applyOrder(qb.db.Table("(?) AS grouped", q.db), postSort)
	}
	return q, nil
}

func (qb *QueryBuilder) group(src *gorm.DB, g filters.GroupStage, preSort []filters.SortKey) (*aggregateQuery, error) {
	key, id, as := column(g.Key), column(filters.GroupKeyField), column(g.As)
	groupBy := clause.GroupBy{Columns: []clause.Column{key}}

	switch g.Accumulator {
	case filters.AccAvg, filters.AccSum, filters.AccMin, filters.AccMax:
		fn := sqlAggregates[g.Accumulator]
		db := src.Select("? AS ?, "+fn+"(?) AS ?", key, id, column(g.Field), as).Clauses(groupBy)
		return &aggregateQuery{db: db}, nil

	case filters.AccCount:
		db := src.Select("? AS ?, COUNT(*) AS ?", key, id, as).Clauses(groupBy)
		return &aggregateQuery{db: db}, nil

	case filters.AccFirst:
		order := append([]filters.SortKey{{Field: g.Key}}, preSort...)
		if g.Field != "" {
			db := applyOrder(src.Select("DISTINCT ON (?) ? AS ?, ? AS ?", key, key, id, column(g.Field), as), order)
			return &aggregateQuery{db: db}, nil
		}
		db := applyOrder(src.Select("DISTINCT ON (?) *", key), order)
		return &aggregateQuery{db: db, wrapAs: g.As}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported accumulator %q", filters.ErrInvalidPipeline, g.Accumulator)
	}
}
