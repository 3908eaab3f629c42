package datefilter_test

import (
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/datefilter"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		filter   datefilter.Relative
		expected string
	}{
		{
			name:     "yesterday",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 1},
			expected: "Created At is yesterday",
		},
		{
			name:     "tomorrow",
			filter:   datefilter.Relative{Direction: datefilter.DirectionNext, Unit: datefilter.UnitDay, Value: 1},
			expected: "Created At is tomorrow",
		},
		{
			name:     "today or yesterday",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 1, IncludeCurrent: true},
			expected: "Created At is today or yesterday",
		},
		{
			name:     "today or tomorrow",
			filter:   datefilter.Relative{Direction: datefilter.DirectionNext, Unit: datefilter.UnitDay, Value: 1, IncludeCurrent: true},
			expected: "Created At is today or tomorrow",
		},
		{
			name:     "previous 7 days",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 7},
			expected: "Created At is in the previous 7 days",
		},
		{
			name:     "previous 30 days or today",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 30, IncludeCurrent: true},
			expected: "Created At is in the previous 30 days or today",
		},
		{
			name:     "previous week",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitWeek, Value: 1},
			expected: "Created At is in the previous week",
		},
		{
			name: "previous 3 weeks starting a quarter ago",
			filter: datefilter.Relative{
				Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitWeek, Value: 3,
				Offset: &datefilter.Offset{Unit: datefilter.UnitQuarter, Value: 1},
			},
			expected: "Created At is in the previous 3 weeks, starting 1 quarter ago",
		},
		{
			name:     "previous month or this month",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitMonth, Value: 1, IncludeCurrent: true},
			expected: "Created At is in the previous month or this month",
		},
		{
			name:     "previous 3 months",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitMonth, Value: 3},
			expected: "Created At is in the previous 3 months",
		},
		{
			name:     "previous 2 quarters or this quarter",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitQuarter, Value: 2, IncludeCurrent: true},
			expected: "Created At is in the previous 2 quarters or this quarter",
		},
		{
			name:     "next 6 hours or this hour",
			filter:   datefilter.Relative{Direction: datefilter.DirectionNext, Unit: datefilter.UnitHour, Value: 6, IncludeCurrent: true},
			expected: "Created At is in the next 6 hours or this hour",
		},
		{
			name: "next 7 days starting next month",
			filter: datefilter.Relative{
				Direction: datefilter.DirectionNext, Unit: datefilter.UnitDay, Value: 7,
				Offset: &datefilter.Offset{Unit: datefilter.UnitMonth, Value: 1},
			},
			expected: "Created At is in the next 7 days, starting 1 month from now",
		},
		{
			name:     "next year",
			filter:   datefilter.Relative{Direction: datefilter.DirectionNext, Unit: datefilter.UnitYear, Value: 1},
			expected: "Created At is in the next year",
		},
		{
			name: "previous month starting 7 months ago",
			filter: datefilter.Relative{
				Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitMonth, Value: 1,
				Offset: &datefilter.Offset{Unit: datefilter.UnitMonth, Value: 7},
			},
			expected: "Created At is in the previous month, starting 7 months ago",
		},
		{
			name: "previous day with offset is not yesterday",
			filter: datefilter.Relative{
				Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 1,
				Offset: &datefilter.Offset{Unit: datefilter.UnitWeek, Value: 2},
			},
			expected: "Created At is in the previous day, starting 2 weeks ago",
		},
		{
			name:     "this year",
			filter:   datefilter.Relative{Direction: datefilter.DirectionCurrent, Unit: datefilter.UnitYear},
			expected: "Created At is this year",
		},
		{
			name:     "today",
			filter:   datefilter.Relative{Direction: datefilter.DirectionCurrent, Unit: datefilter.UnitDay},
			expected: "Created At is today",
		},
		{
			name:     "invalid value still renders",
			filter:   datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitDay, Value: 0},
			expected: "Created At is in the previous 0 days",
		},
		{
			name: "invalid offset unit still renders",
			filter: datefilter.Relative{
				Direction: datefilter.DirectionNext, Unit: datefilter.UnitMonth, Value: 2,
				Offset: &datefilter.Offset{Unit: datefilter.UnitDay, Value: 3},
			},
			expected: "Created At is in the next 2 months, starting 3 days from now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.DisplayName("Created At"))
		})
	}
}

func TestDisplayNamePluralization(t *testing.T) {
	for _, unit := range datefilter.Units {
		for _, value := range []int{2, 3, 10, 30} {
			for _, dir := range []datefilter.Direction{datefilter.DirectionPrevious, datefilter.DirectionNext} {
				f := datefilter.Relative{Direction: dir, Unit: unit, Value: value}
				require.Contains(t, f.Description(), fmt.Sprintf(" %d %ss", value, unit))
			}
		}

		f := datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: unit, Value: 1}
		require.NotContains(t, f.Description(), string(unit)+"s")

		for _, offsetValue := range []int{1, 4} {
			f := datefilter.Relative{
				Direction: datefilter.DirectionNext, Unit: unit, Value: 5,
				Offset: &datefilter.Offset{Unit: unit, Value: offsetValue},
			}
			suffix := fmt.Sprintf("starting %d %s from now", offsetValue, unit.Name(offsetValue))
			require.Contains(t, f.Description(), suffix)
			if offsetValue == 1 {
				require.Contains(t, f.Description(), fmt.Sprintf("starting 1 %s from", unit))
			}
		}
	}
}

func TestShortcutDisplayNames(t *testing.T) {
	expected := map[string]string{
		"Today":              "Created At is today",
		"Yesterday":          "Created At is yesterday",
		"Previous week":      "Created At is in the previous week",
		"Previous 7 days":    "Created At is in the previous 7 days",
		"Previous 30 days":   "Created At is in the previous 30 days",
		"Previous month":     "Created At is in the previous month",
		"Previous 3 months":  "Created At is in the previous 3 months",
		"Previous 12 months": "Created At is in the previous 12 months",
	}

	shortcuts := datefilter.Shortcuts()
	require.Len(t, shortcuts, len(expected))
	require.ElementsMatch(t, lo.Keys(expected), lo.Map(shortcuts, func(s datefilter.Shortcut, _ int) string {
		return s.Name
	}))

	for _, s := range shortcuts {
		require.True(t, s.Filter.IsValid(), s.Name)
		require.Equal(t, expected[s.Name], s.Filter.DisplayName("Created At"), s.Name)
	}
}
