package filter

import (
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/datefilter"
)

var ErrRelativeWithBounds = errors.New("relative range cannot be combined with absolute bounds")

// Time filters a time.Time field. Relative is resolved into Gte and Lt bounds against a
// reference time before the filter reaches a query.
type Time struct {
	Not      *Time                `json:"not"`
	And      []*Time              `json:"and"`
	Or       []*Time              `json:"or"`
	Eq       *time.Time           `json:"eq"`
	Neq      *time.Time           `json:"neq"`
	Lt       *time.Time           `json:"lt"`
	Lte      *time.Time           `json:"lte"`
	Gt       *time.Time           `json:"gt"`
	Gte      *time.Time           `json:"gte"`
	IsNull   *bool                `json:"isNull"`
	Relative *datefilter.Relative `json:"relative"`
}

// Resolve returns a copy of the filter in which every Relative has been replaced by the
// concrete range it covers at the reference time.
func (t *Time) Resolve(at time.Time, opts ...datefilter.ResolveOption) (*Time, error) {
	if t == nil {
		return nil, nil
	}

	resolved := *t
	resolved.Relative = nil

	if t.Relative != nil {
		if t.Lt != nil || t.Lte != nil || t.Gt != nil || t.Gte != nil {
			return nil, errors.WithStack(ErrRelativeWithBounds)
		}
		rng, err := t.Relative.Resolve(at, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %q", t.Relative.Description())
		}
		resolved.Gte = lo.ToPtr(rng.Start)
		resolved.Lt = lo.ToPtr(rng.End)
	}

	var err error
	if resolved.Not, err = t.Not.Resolve(at, opts...); err != nil {
		return nil, err
	}
	if resolved.And, err = resolveAll(t.And, at, opts); err != nil {
		return nil, err
	}
	if resolved.Or, err = resolveAll(t.Or, at, opts); err != nil {
		return nil, err
	}
	return &resolved, nil
}

func resolveAll(filters []*Time, at time.Time, opts []datefilter.ResolveOption) ([]*Time, error) {
	if filters == nil {
		return nil, nil
	}
	out := make([]*Time, 0, len(filters))
	for _, f := range filters {
		r, err := f.Resolve(at, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// IsRelative reports whether the filter or any nested filter carries a relative range.
func (t *Time) IsRelative() bool {
	if t == nil {
		return false
	}
	if t.Relative != nil || t.Not.IsRelative() {
		return true
	}
	return lo.SomeBy(t.And, (*Time).IsRelative) || lo.SomeBy(t.Or, (*Time).IsRelative)
}
