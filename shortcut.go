package datefilter

import (
	"strings"

	"github.com/samber/lo"
)

// Shortcut is a canned relative date range with no editable magnitude.
type Shortcut struct {
	Name   string
	Filter Relative
}

var shortcuts = []Shortcut{
	{Name: "Today", Filter: Relative{Direction: DirectionCurrent, Unit: UnitDay}},
	{Name: "Yesterday", Filter: Relative{Direction: DirectionPrevious, Unit: UnitDay, Value: 1}},
	{Name: "Previous week", Filter: Relative{Direction: DirectionPrevious, Unit: UnitWeek, Value: 1}},
	{Name: "Previous 7 days", Filter: Relative{Direction: DirectionPrevious, Unit: UnitDay, Value: 7}},
	{Name: "Previous 30 days", Filter: Relative{Direction: DirectionPrevious, Unit: UnitDay, Value: 30}},
	{Name: "Previous month", Filter: Relative{Direction: DirectionPrevious, Unit: UnitMonth, Value: 1}},
	{Name: "Previous 3 months", Filter: Relative{Direction: DirectionPrevious, Unit: UnitMonth, Value: 3}},
	{Name: "Previous 12 months", Filter: Relative{Direction: DirectionPrevious, Unit: UnitMonth, Value: 12}},
}

// Shortcuts returns the canned ranges in display order.
func Shortcuts() []Shortcut {
	return lo.Map(shortcuts, func(s Shortcut, _ int) Shortcut {
		s.Filter = s.Filter.clone()
		return s
	})
}

// FindShortcut looks a shortcut up by name, ignoring case.
func FindShortcut(name string) (Shortcut, bool) {
	return lo.Find(Shortcuts(), func(s Shortcut) bool {
		return strings.EqualFold(s.Name, strings.TrimSpace(name))
	})
}

// Shortcut returns the canned range r is equal to, if any.
func (r Relative) Shortcut() (Shortcut, bool) {
	return lo.Find(Shortcuts(), func(s Shortcut) bool {
		return s.Filter.Equal(r)
	})
}
