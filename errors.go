package datefilter

import "github.com/pkg/errors"

var (
	ErrInvalidValue                  = errors.New("value must be at least 1")
	ErrInvalidOffsetValue            = errors.New("offset value must be at least 1")
	ErrInvalidOffsetUnit             = errors.New("offset unit must not be finer than the filter unit")
	ErrMutuallyExclusiveAugmentation = errors.New("offset and current period inclusion cannot be combined")
	ErrCannotBuildClause             = errors.New("cannot build clause")
)

// Validate returns the first rule the filter breaks, or nil.
func (r Relative) Validate() error {
	if !r.Unit.Valid() {
		return errors.Wrapf(ErrUnknownUnit, "%q", r.Unit)
	}

	switch r.Direction {
	case DirectionCurrent:
		return nil
	case DirectionPrevious, DirectionNext:
	default:
		return errors.Wrapf(ErrUnknownDirection, "%q", r.Direction)
	}

	if r.Value < 1 {
		return errors.Wrapf(ErrInvalidValue, "got %d", r.Value)
	}
	if r.Offset == nil {
		return nil
	}
	if r.IncludeCurrent {
		return ErrMutuallyExclusiveAugmentation
	}
	if r.Offset.Value < 1 {
		return errors.Wrapf(ErrInvalidOffsetValue, "got %d", r.Offset.Value)
	}
	if !r.Offset.Unit.AtLeast(r.Unit) {
		return errors.Wrapf(ErrInvalidOffsetUnit, "%s is finer than %s", r.Offset.Unit, r.Unit)
	}
	return nil
}

func (r Relative) IsValid() bool {
	return r.Validate() == nil
}
