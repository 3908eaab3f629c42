package datefilter

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Unit is a temporal granularity. Units are ordered from finest to coarsest.
type Unit string

const (
	UnitMinute  Unit = "minute"
	UnitHour    Unit = "hour"
	UnitDay     Unit = "day"
	UnitWeek    Unit = "week"
	UnitMonth   Unit = "month"
	UnitQuarter Unit = "quarter"
	UnitYear    Unit = "year"
)

// Units lists every unit, finest first.
var Units = []Unit{UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitQuarter, UnitYear}

var ErrUnknownUnit = errors.New("unknown unit")

// ParseUnit accepts singular or plural unit names in any case.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, u := range Units {
		if name == string(u) || name == string(u)+"s" {
			return u, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownUnit, "%q", s)
}

// Index returns the position of u in Units, or -1 if u is not a known unit.
func (u Unit) Index() int {
	return lo.IndexOf(Units, u)
}

func (u Unit) Valid() bool {
	return u.Index() >= 0
}

// AtLeast reports whether u is as coarse as or coarser than other.
func (u Unit) AtLeast(other Unit) bool {
	return u.Valid() && u.Index() >= other.Index()
}

// Name returns the unit name pluralized for n.
func (u Unit) Name(n int) string {
	if n == 1 {
		return string(u)
	}
	return string(u) + "s"
}

// UnitsFrom returns the units that are at least as coarse as u.
func UnitsFrom(u Unit) []Unit {
	return lo.Filter(Units, func(item Unit, _ int) bool {
		return item.AtLeast(u)
	})
}
