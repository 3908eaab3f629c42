package datefilter

import (
	"fmt"
	"strings"
)

// DisplayName renders the filter over column, e.g.
// "Created At is in the previous 3 weeks, starting 1 quarter ago".
// Invalid filters still render, using whatever values they hold.
func (r Relative) DisplayName(column string) string {
	return column + " " + r.Description()
}

// Description is DisplayName without the column.
func (r Relative) Description() string {
	if r.Direction == DirectionCurrent {
		return "is " + thisPeriod(r.Unit)
	}

	if r.Value == 1 && r.Unit == UnitDay && r.Offset == nil {
		day := "yesterday"
		if r.Direction == DirectionNext {
			day = "tomorrow"
		}
		if r.IncludeCurrent {
			return "is today or " + day
		}
		return "is " + day
	}

	var b strings.Builder
	b.WriteString("is in the ")
	b.WriteString(directionWord(r.Direction))
	b.WriteString(" ")
	b.WriteString(interval(r.Value, r.Unit))
	if r.IncludeCurrent {
		b.WriteString(" or ")
		b.WriteString(thisPeriod(r.Unit))
	}
	if r.Offset != nil {
		fmt.Fprintf(&b, ", starting %d %s %s", r.Offset.Value, r.Offset.Unit.Name(r.Offset.Value), r.Direction.OffsetSuffix())
	}
	return b.String()
}

func directionWord(d Direction) string {
	if d == DirectionNext {
		return "next"
	}
	return "previous"
}

// interval drops the magnitude when it is 1: "month", "3 months".
func interval(value int, u Unit) string {
	if value == 1 {
		return string(u)
	}
	return fmt.Sprintf("%d %s", value, u.Name(value))
}

func thisPeriod(u Unit) string {
	if u == UnitDay {
		return "today"
	}
	return "this " + string(u)
}
