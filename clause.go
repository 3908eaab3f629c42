package datefilter

import (
	"github.com/pkg/errors"

	"github.com/theplant/datefilter/internal/hook"
	"github.com/theplant/datefilter/mbql"
)

// ClauseError reports why a clause could not be built.
// It matches both ErrCannotBuildClause and the underlying cause.
type ClauseError struct {
	Err error
}

func (e *ClauseError) Error() string {
	return ErrCannotBuildClause.Error() + ": " + e.Err.Error()
}

func (e *ClauseError) Unwrap() []error {
	return []error{ErrCannotBuildClause, e.Err}
}

type clauseOptions struct {
	buildHook func(next mbql.BuildFunc) mbql.BuildFunc
}

type ClauseOption func(*clauseOptions)

// WithBuildClauseHook wraps the clause builder. Hooks run in the order they are added.
func WithBuildClauseHook(hooks ...func(next mbql.BuildFunc) mbql.BuildFunc) ClauseOption {
	return func(o *clauseOptions) {
		o.buildHook = hook.Append(o.buildHook, hooks...)
	}
}

// Params returns the normalized, signed parameters handed to the clause builder.
func (r Relative) Params() mbql.Params {
	if r.Direction == DirectionCurrent {
		return mbql.Params{Current: true, Unit: string(r.Unit)}
	}
	sign := r.Direction.Sign()
	p := mbql.Params{
		Amount:         sign * r.Value,
		Unit:           string(r.Unit),
		IncludeCurrent: r.IncludeCurrent,
	}
	if r.Offset != nil {
		p.OffsetAmount = sign * r.Offset.Value
		p.OffsetUnit = string(r.Offset.Unit)
	}
	return p
}

// ToClause builds the query clause for the filter over column.
// Invalid filters fail with ErrCannotBuildClause.
func (r Relative) ToClause(column string, opts ...ClauseOption) (*mbql.Clause, error) {
	if err := r.Validate(); err != nil {
		return nil, &ClauseError{Err: err}
	}

	options := &clauseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	build := mbql.BuildFunc(mbql.Build)
	if options.buildHook != nil {
		build = options.buildHook(build)
	}

	c, err := build(column, r.Params())
	if err != nil {
		return nil, &ClauseError{Err: errors.Wrap(err, "build clause")}
	}
	return c, nil
}

// FromClause reads a filter back from a clause built by ToClause.
func FromClause(c *mbql.Clause) (Relative, error) {
	if err := c.Validate(); err != nil {
		return Relative{}, err
	}
	p := c.Params()

	unit, err := ParseUnit(p.Unit)
	if err != nil {
		return Relative{}, err
	}
	if p.Current {
		return Relative{Direction: DirectionCurrent, Unit: unit}, nil
	}

	r := Relative{
		Direction:      DirectionNext,
		Unit:           unit,
		Value:          p.Amount,
		IncludeCurrent: p.IncludeCurrent,
	}
	if p.Amount < 0 {
		r.Direction = DirectionPrevious
		r.Value = -p.Amount
	}
	if p.OffsetUnit != "" {
		offsetUnit, err := ParseUnit(p.OffsetUnit)
		if err != nil {
			return Relative{}, err
		}
		value := p.OffsetAmount
		if value < 0 {
			value = -value
		}
		r.Offset = &Offset{Unit: offsetUnit, Value: value}
	}
	return r, nil
}
