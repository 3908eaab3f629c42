package gormfilter

import (
	"gorm.io/gorm/clause"
)

// negate pushes NOT down to the leaves so that a negated range reads as
// "before start OR at/after end" instead of relying on NOT over grouped conditions.
func negate(expr clause.Expression) clause.Expression {
	switch e := expr.(type) {
	case nil:
		return nil
	case clause.AndConditions:
		return clause.Or(negateAll(e.Exprs)...)
	case clause.OrConditions:
		return clause.And(negateAll(e.Exprs)...)
	default:
		return clause.Not(e)
	}
}

func negateAll(exprs []clause.Expression) []clause.Expression {
	out := make([]clause.Expression, 0, len(exprs))
	for _, e := range exprs {
		if n := negate(e); n != nil {
			out = append(out, n)
		}
	}
	return out
}
