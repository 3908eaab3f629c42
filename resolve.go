package datefilter

import (
	"time"

	"github.com/jinzhu/now"
)

// Range is a half-open time range [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

type resolveOptions struct {
	weekStart time.Weekday
	location  *time.Location
}

type ResolveOption func(*resolveOptions)

// WithWeekStart sets the first day of a week. Weeks start on Sunday by default.
func WithWeekStart(d time.Weekday) ResolveOption {
	return func(o *resolveOptions) {
		o.weekStart = d
	}
}

// WithLocation sets the time zone unit boundaries are computed in.
// The location of the reference time is used by default.
func WithLocation(loc *time.Location) ResolveOption {
	return func(o *resolveOptions) {
		o.location = loc
	}
}

// Resolve computes the concrete range the filter covers at the reference time.
// Bounds are aligned to unit boundaries. An offset moves the reference time before alignment.
func (r Relative) Resolve(at time.Time, opts ...ResolveOption) (Range, error) {
	if err := r.Validate(); err != nil {
		return Range{}, err
	}

	options := &resolveOptions{weekStart: time.Sunday}
	for _, opt := range opts {
		opt(options)
	}
	cfg := &now.Config{
		WeekStartDay: options.weekStart,
		TimeLocation: options.location,
	}

	anchor := at
	if options.location != nil {
		anchor = anchor.In(options.location)
	}
	if r.Offset != nil {
		anchor = shift(anchor, r.Offset.Unit, r.Direction.Sign()*r.Offset.Value)
	}
	base := truncate(cfg.With(anchor), r.Unit)

	switch r.Direction {
	case DirectionPrevious:
		rng := Range{Start: shift(base, r.Unit, -r.Value), End: base}
		if r.IncludeCurrent {
			rng.End = shift(base, r.Unit, 1)
		}
		return rng, nil
	case DirectionNext:
		rng := Range{Start: shift(base, r.Unit, 1), End: shift(base, r.Unit, 1+r.Value)}
		if r.IncludeCurrent {
			rng.Start = base
		}
		return rng, nil
	default:
		return Range{Start: base, End: shift(base, r.Unit, 1)}, nil
	}
}

func truncate(n *now.Now, u Unit) time.Time {
	switch u {
	case UnitMinute:
		return n.BeginningOfMinute()
	case UnitHour:
		return n.BeginningOfHour()
	case UnitDay:
		return n.BeginningOfDay()
	case UnitWeek:
		return n.BeginningOfWeek()
	case UnitMonth:
		return n.BeginningOfMonth()
	case UnitQuarter:
		return n.BeginningOfQuarter()
	default:
		return n.BeginningOfYear()
	}
}

func shift(t time.Time, u Unit, n int) time.Time {
	switch u {
	case UnitMinute:
		return t.Add(time.Duration(n) * time.Minute)
	case UnitHour:
		return t.Add(time.Duration(n) * time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, n)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitMonth:
		return addMonths(t, n)
	case UnitQuarter:
		return addMonths(t, 3*n)
	default:
		return addMonths(t, 12*n)
	}
}

// addMonths clamps the day to the end of the target month, so Mar 31 minus a month is Feb 28.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(day, last), hour, minute, sec, t.Nanosecond(), t.Location())
}
