package mbql

import (
	"github.com/pkg/errors"
)

// Params are the normalized arguments of a relative temporal filter.
// Amounts are signed: negative values look into the past.
type Params struct {
	Current        bool
	Amount         int
	Unit           string
	IncludeCurrent bool
	OffsetAmount   int
	OffsetUnit     string
}

// BuildFunc turns params into a clause over the named field.
type BuildFunc func(field string, params Params) (*Clause, error)

// Build is the default BuildFunc.
func Build(field string, params Params) (*Clause, error) {
	c := &Clause{
		Operator:       OperatorTimeInterval,
		Field:          FieldRef{Name: field},
		Current:        params.Current,
		Amount:         params.Amount,
		Unit:           params.Unit,
		IncludeCurrent: params.IncludeCurrent,
	}
	if params.OffsetAmount != 0 || params.OffsetUnit != "" {
		if params.IncludeCurrent {
			return nil, errors.Wrap(ErrMalformedClause, "offset cannot be combined with include-current")
		}
		c.Operator = OperatorRelativeTimeInterval
		c.OffsetAmount = params.OffsetAmount
		c.OffsetUnit = params.OffsetUnit
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Params returns the normalized arguments the clause was built from.
func (c *Clause) Params() Params {
	return Params{
		Current:        c.Current,
		Amount:         c.Amount,
		Unit:           c.Unit,
		IncludeCurrent: c.IncludeCurrent,
		OffsetAmount:   c.OffsetAmount,
		OffsetUnit:     c.OffsetUnit,
	}
}
