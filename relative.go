package datefilter

import (
	"github.com/samber/lo"
)

// DefaultOffsetValue is the amount a new "starting from" offset is created with.
const DefaultOffsetValue = 7

// Offset shifts a relative range away from now before the range starts.
// It has no sign of its own: it points the same way as the filter direction.
type Offset struct {
	Unit  Unit `json:"unit"`
	Value int  `json:"value"`
}

// Relative is a relative date range such as "the previous 3 months, starting 7 months ago".
// It is an immutable value: every setter returns a modified copy.
type Relative struct {
	Direction      Direction `json:"direction"`
	Unit           Unit      `json:"unit"`
	Value          int       `json:"value,omitempty"`
	IncludeCurrent bool      `json:"includeCurrent,omitempty"`
	Offset         *Offset   `json:"offset,omitempty"`
}

// Default returns the filter a new editing session starts from: the previous 30 days.
func Default() Relative {
	return Relative{
		Direction: DirectionPrevious,
		Unit:      UnitDay,
		Value:     30,
	}
}

func (r Relative) clone() Relative {
	if r.Offset != nil {
		r.Offset = lo.ToPtr(*r.Offset)
	}
	return r
}

func (r Relative) SetDirection(d Direction) Relative {
	r = r.clone()
	r.Direction = d
	if d == DirectionCurrent {
		r.Offset = nil
		r.IncludeCurrent = false
	}
	return r
}

// SetUnit changes the unit and raises an offset unit that became finer than it.
func (r Relative) SetUnit(u Unit) Relative {
	r = r.clone()
	r.Unit = u
	if r.Offset != nil && !r.Offset.Unit.AtLeast(u) {
		r.Offset.Unit = u
	}
	return r
}

// SetValue stores v as is; values below 1 are reported by Validate.
func (r Relative) SetValue(v int) Relative {
	r = r.clone()
	r.Value = v
	return r
}

// ToggleCurrentInterval flips current period inclusion. Turning it on drops the offset.
func (r Relative) ToggleCurrentInterval() Relative {
	r = r.clone()
	r.IncludeCurrent = !r.IncludeCurrent
	if r.IncludeCurrent {
		r.Offset = nil
	}
	return r
}

// AddOffset sets the offset and drops current period inclusion.
// The offset is kept even when its unit is finer than the filter unit, in which case
// ErrInvalidOffsetUnit is returned and the filter stays invalid until it is corrected.
func (r Relative) AddOffset(o Offset) (Relative, error) {
	r = r.clone()
	r.Offset = &o
	r.IncludeCurrent = false
	if !o.Unit.AtLeast(r.Unit) {
		return r, ErrInvalidOffsetUnit
	}
	return r, nil
}

// DefaultOffset returns the offset proposed when "starting from" is switched on.
func (r Relative) DefaultOffset() Offset {
	return Offset{Unit: r.Unit, Value: DefaultOffsetValue}
}

func (r Relative) RemoveOffset() Relative {
	r = r.clone()
	r.Offset = nil
	return r
}

// SetOffsetValue updates the offset value. It is a no-op without an offset.
func (r Relative) SetOffsetValue(v int) Relative {
	r = r.clone()
	if r.Offset != nil {
		r.Offset.Value = v
	}
	return r
}

// SetOffsetUnit updates the offset unit. It is a no-op without an offset.
func (r Relative) SetOffsetUnit(u Unit) Relative {
	r = r.clone()
	if r.Offset != nil {
		r.Offset.Unit = u
	}
	return r
}

// OffsetUnits returns the units an offset may use with this filter.
func (r Relative) OffsetUnits() []Unit {
	return UnitsFrom(r.Unit)
}

// Equal compares two filters by value. Value is ignored for current filters.
func (r Relative) Equal(other Relative) bool {
	if r.Direction != other.Direction || r.Unit != other.Unit || r.IncludeCurrent != other.IncludeCurrent {
		return false
	}
	if r.Direction != DirectionCurrent && r.Value != other.Value {
		return false
	}
	if r.Offset == nil || other.Offset == nil {
		return r.Offset == other.Offset
	}
	return *r.Offset == *other.Offset
}
