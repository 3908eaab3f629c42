package gormfilter

import (
	"cmp"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/filter"
)

type options struct {
	now         func() time.Time
	resolveOpts []datefilter.ResolveOption
	limits      *filter.ComplexityLimits
}

type Option func(*options)

// WithNow sets the clock relative ranges are resolved against.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithResolveOptions(opts ...datefilter.ResolveOption) Option {
	return func(o *options) {
		o.resolveOpts = append(o.resolveOpts, opts...)
	}
}

// WithComplexityLimits rejects filters that exceed limits.
func WithComplexityLimits(limits *filter.ComplexityLimits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

// Scope restricts the query to rows whose time field matches the filter.
// fieldName may be the struct field name or the column name.
func Scope(fieldName string, f *filter.Time, opts ...Option) func(db *gorm.DB) *gorm.DB {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		fdb, err := addFilter(db, fieldName, f, o)
		if err != nil {
			db.AddError(err)
			return db
		}
		return fdb
	}
}

func addFilter(db *gorm.DB, fieldName string, f *filter.Time, o *options) (*gorm.DB, error) {
	if f == nil {
		return db, nil
	}
	if err := filter.CheckComplexity(f, o.limits); err != nil {
		return nil, err
	}

	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema with db")
	}

	field := stmt.Schema.LookUpField(fieldName)
	if field == nil {
		return nil, errors.Errorf("missing field %q in schema", fieldName)
	}

	resolved, err := f.Resolve(o.now(), o.resolveOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve filter for field %q", fieldName)
	}

	expr := buildTimeExpr(clause.Column{Table: stmt.Table, Name: field.DBName}, resolved)
	if expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}

func buildTimeExpr(column clause.Column, f *filter.Time) clause.Expression {
	if f == nil {
		return nil
	}

	var exprs []clause.Expression

	if sub := buildTimeExprs(column, f.And); len(sub) > 0 {
		exprs = append(exprs, clause.And(sub...))
	}
	if f.Eq != nil {
		exprs = append(exprs, clause.Eq{Column: column, Value: *f.Eq})
	}
	if f.Gt != nil {
		exprs = append(exprs, clause.Gt{Column: column, Value: *f.Gt})
	}
	if f.Gte != nil {
		exprs = append(exprs, clause.Gte{Column: column, Value: *f.Gte})
	}
	if f.IsNull != nil {
		if *f.IsNull {
			exprs = append(exprs, clause.Eq{Column: column, Value: nil})
		} else {
			exprs = append(exprs, clause.Neq{Column: column, Value: nil})
		}
	}
	if f.Lt != nil {
		exprs = append(exprs, clause.Lt{Column: column, Value: *f.Lt})
	}
	if f.Lte != nil {
		exprs = append(exprs, clause.Lte{Column: column, Value: *f.Lte})
	}
	if f.Neq != nil {
		exprs = append(exprs, clause.Neq{Column: column, Value: *f.Neq})
	}
	if not := negate(buildTimeExpr(column, f.Not)); not != nil {
		exprs = append(exprs, not)
	}
	if sub := buildTimeExprs(column, f.Or); len(sub) > 0 {
		exprs = append(exprs, clause.Or(sub...))
	}

	return combineExprs(exprs...)
}

func buildTimeExprs(column clause.Column, filters []*filter.Time) []clause.Expression {
	var exprs []clause.Expression
	for _, f := range filters {
		if expr := buildTimeExpr(column, f); expr != nil {
			exprs = append(exprs, expr)
		}
	}
	return exprs
}

func combineExprs(exprs ...clause.Expression) clause.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}
