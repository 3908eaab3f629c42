package datefilter

import (
	"strings"

	"github.com/pkg/errors"
)

// Direction tells which side of now a relative range lies on.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
	DirectionCurrent  Direction = "current"
)

var Directions = []Direction{DirectionPrevious, DirectionNext, DirectionCurrent}

var ErrUnknownDirection = errors.New("unknown direction")

// ParseDirection accepts direction names in any case, plus "past" and "last" for previous.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "previous", "past", "last":
		return DirectionPrevious, nil
	case "next":
		return DirectionNext, nil
	case "current", "this":
		return DirectionCurrent, nil
	}
	return "", errors.Wrapf(ErrUnknownDirection, "%q", s)
}

// Sign is -1 for previous, 1 for next and 0 for current.
func (d Direction) Sign() int {
	switch d {
	case DirectionPrevious:
		return -1
	case DirectionNext:
		return 1
	}
	return 0
}

// OffsetSuffix is the phrase that follows an offset in display names.
func (d Direction) OffsetSuffix() string {
	if d == DirectionNext {
		return "from now"
	}
	return "ago"
}
