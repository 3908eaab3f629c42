package filter

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrTooComplex = errors.New("filter too complex")

// ComplexityLimits defines limits for time filter complexity.
// A value of 0 means no limit for that metric.
type ComplexityLimits struct {
	MaxConditions       int // Maximum number of comparisons, relative ranges included
	MaxRelativeRanges   int // Maximum number of relative ranges
	MaxLogicalOperators int // Maximum number of logical operators (And/Or/Not)
	MaxLogicalDepth     int // Maximum nesting depth of logical operators
	MaxOrBranches       int // Maximum branches in a single Or operator
}

// ComplexityResult contains the calculated complexity metrics of a time filter.
type ComplexityResult struct {
	Conditions       int
	RelativeRanges   int
	LogicalOperators int
	LogicalDepth     int
	OrBranches       int
}

var (
	DefaultLimits = &ComplexityLimits{
		MaxConditions:       10,
		MaxRelativeRanges:   4,
		MaxLogicalOperators: 5,
		MaxLogicalDepth:     2,
		MaxOrBranches:       4,
	}

	StrictLimits = &ComplexityLimits{
		MaxConditions:       4,
		MaxRelativeRanges:   1,
		MaxLogicalOperators: 2,
		MaxLogicalDepth:     1,
		MaxOrBranches:       2,
	}
)

// CheckComplexity returns an ErrTooComplex error naming the first exceeded limit.
// If limits is nil, no validation is performed.
func CheckComplexity(t *Time, limits *ComplexityLimits) error {
	if limits == nil {
		return nil
	}

	result := CalculateComplexity(t)

	check := func(name string, got, limit int) error {
		if limit > 0 && got > limit {
			return errors.Wrapf(ErrTooComplex, "%s %d exceeds limit %d", name, got, limit)
		}
		return nil
	}
	for _, err := range []error{
		check("condition count", result.Conditions, limits.MaxConditions),
		check("relative range count", result.RelativeRanges, limits.MaxRelativeRanges),
		check("logical operator count", result.LogicalOperators, limits.MaxLogicalOperators),
		check("logical nesting depth", result.LogicalDepth, limits.MaxLogicalDepth),
		check("Or branches", result.OrBranches, limits.MaxOrBranches),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// CalculateComplexity analyzes a time filter and returns its complexity metrics.
func CalculateComplexity(t *Time) *ComplexityResult {
	result := &ComplexityResult{}
	calculateComplexity(t, 0, result)
	return result
}

func calculateComplexity(t *Time, logicalDepth int, result *ComplexityResult) {
	if t == nil {
		return
	}
	result.LogicalDepth = max(result.LogicalDepth, logicalDepth)

	result.Conditions += lo.Count([]bool{
		t.Eq != nil, t.Neq != nil, t.Lt != nil, t.Lte != nil,
		t.Gt != nil, t.Gte != nil, t.IsNull != nil, t.Relative != nil,
	}, true)
	if t.Relative != nil {
		result.RelativeRanges++
	}

	if t.Not != nil {
		result.LogicalOperators++
		calculateComplexity(t.Not, logicalDepth+1, result)
	}
	if t.And != nil {
		result.LogicalOperators++
		for _, sub := range t.And {
			calculateComplexity(sub, logicalDepth+1, result)
		}
	}
	if t.Or != nil {
		result.LogicalOperators++
		result.OrBranches = max(result.OrBranches, len(t.Or))
		for _, sub := range t.Or {
			calculateComplexity(sub, logicalDepth+1, result)
		}
	}
}
