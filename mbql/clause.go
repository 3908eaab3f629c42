package mbql

import (
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/sjson"
)

type Operator string

const (
	OperatorTimeInterval         Operator = "time-interval"
	OperatorRelativeTimeInterval Operator = "relative-time-interval"
)

const (
	currentAmount        = "current"
	optionIncludeCurrent = "include-current"
)

var (
	ErrMalformedClause     = errors.New("malformed clause")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// Units lists the temporal units a clause may carry, finest first.
var Units = []string{"minute", "hour", "day", "week", "month", "quarter", "year"}

// FieldRef references a temporal column by name.
type FieldRef struct {
	Name string
}

// Clause is a relative temporal filter predicate over a single column.
//
//	["time-interval", ["field", "Created At", null], -30, "day", {"include-current": true}]
//	["time-interval", ["field", "Created At", null], "current", "year"]
//	["relative-time-interval", ["field", "Created At", null], -3, "week", -1, "quarter"]
type Clause struct {
	Operator       Operator
	Field          FieldRef
	Current        bool
	Amount         int
	Unit           string
	IncludeCurrent bool
	OffsetAmount   int
	OffsetUnit     string
}

// use a frozen config so map keys are always emitted in the same order
var jsoniterForClause = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Validate checks the structural rules every clause must follow.
func (c *Clause) Validate() error {
	if c == nil {
		return errors.Wrap(ErrMalformedClause, "clause is nil")
	}
	if c.Field.Name == "" {
		return errors.Wrap(ErrMalformedClause, "field name is empty")
	}
	if !lo.Contains(Units, c.Unit) {
		return errors.Wrapf(ErrMalformedClause, "unknown unit %q", c.Unit)
	}

	switch c.Operator {
	case OperatorTimeInterval:
		if c.OffsetAmount != 0 || c.OffsetUnit != "" {
			return errors.Wrapf(ErrMalformedClause, "%s does not take an offset", c.Operator)
		}
		if c.Current {
			if c.Amount != 0 || c.IncludeCurrent {
				return errors.Wrap(ErrMalformedClause, "current interval takes neither an amount nor options")
			}
			return nil
		}
		if c.Amount == 0 {
			return errors.Wrap(ErrMalformedClause, "amount must not be zero")
		}
	case OperatorRelativeTimeInterval:
		if c.Current || c.IncludeCurrent {
			return errors.Wrapf(ErrMalformedClause, "%s takes neither current nor options", c.Operator)
		}
		if c.Amount == 0 || c.OffsetAmount == 0 {
			return errors.Wrap(ErrMalformedClause, "amount and offset amount must not be zero")
		}
		if (c.Amount < 0) != (c.OffsetAmount < 0) {
			return errors.Wrap(ErrMalformedClause, "amount and offset amount must have the same sign")
		}
		if !lo.Contains(Units, c.OffsetUnit) {
			return errors.Wrapf(ErrMalformedClause, "unknown offset unit %q", c.OffsetUnit)
		}
	default:
		return errors.Wrapf(ErrUnsupportedOperator, "%q", c.Operator)
	}
	return nil
}

func (c *Clause) args() []any {
	var amount any = c.Amount
	if c.Current {
		amount = currentAmount
	}
	args := []any{
		string(c.Operator),
		[]any{"field", c.Field.Name, nil},
		amount,
		c.Unit,
	}
	if c.Operator == OperatorRelativeTimeInterval {
		args = append(args, c.OffsetAmount, c.OffsetUnit)
	}
	return args
}

func (c *Clause) options() map[string]any {
	if !c.IncludeCurrent {
		return nil
	}
	return map[string]any{optionIncludeCurrent: true}
}

func (c *Clause) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	data, err := jsoniterForClause.Marshal(c.args())
	if err != nil {
		return nil, errors.Wrap(err, "marshal clause")
	}
	if opts := c.options(); opts != nil {
		data, err = sjson.SetBytes(data, "-1", opts)
		if err != nil {
			return nil, errors.Wrap(err, "set clause options")
		}
	}
	return data, nil
}

func (c *Clause) UnmarshalJSON(data []byte) error {
	var args []any
	if err := jsoniterForClause.Unmarshal(data, &args); err != nil {
		return errors.Wrap(ErrMalformedClause, err.Error())
	}
	parsed, err := fromArgs(args)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// Parse decodes a JSON encoded clause.
func Parse(data []byte) (*Clause, error) {
	c := &Clause{}
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}

func fromArgs(args []any) (*Clause, error) {
	if len(args) < 4 {
		return nil, errors.Wrapf(ErrMalformedClause, "expected at least 4 elements, got %d", len(args))
	}

	op, ok := args[0].(string)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedClause, "operator should be string, got %T", args[0])
	}
	c := &Clause{Operator: Operator(op)}

	name, err := parseFieldRef(args[1])
	if err != nil {
		return nil, err
	}
	c.Field = FieldRef{Name: name}

	if s, ok := args[2].(string); ok {
		if s != currentAmount {
			return nil, errors.Wrapf(ErrMalformedClause, "unknown amount %q", s)
		}
		c.Current = true
	} else {
		c.Amount, err = toInt(args[2])
		if err != nil {
			return nil, errors.Wrap(err, "amount")
		}
	}

	if c.Unit, ok = args[3].(string); !ok {
		return nil, errors.Wrapf(ErrMalformedClause, "unit should be string, got %T", args[3])
	}

	rest := args[4:]
	switch c.Operator {
	case OperatorTimeInterval:
		if len(rest) > 1 {
			return nil, errors.Wrapf(ErrMalformedClause, "%s takes at most 5 elements", c.Operator)
		}
		if len(rest) == 1 && rest[0] != nil {
			opts, ok := rest[0].(map[string]any)
			if !ok {
				return nil, errors.Wrapf(ErrMalformedClause, "options should be map[string]any, got %T", rest[0])
			}
			if v, ok := opts[optionIncludeCurrent].(bool); ok {
				c.IncludeCurrent = v
			}
		}
	case OperatorRelativeTimeInterval:
		if len(rest) != 2 {
			return nil, errors.Wrapf(ErrMalformedClause, "%s takes exactly 6 elements", c.Operator)
		}
		if c.OffsetAmount, err = toInt(rest[0]); err != nil {
			return nil, errors.Wrap(err, "offset amount")
		}
		if c.OffsetUnit, ok = rest[1].(string); !ok {
			return nil, errors.Wrapf(ErrMalformedClause, "offset unit should be string, got %T", rest[1])
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseFieldRef(v any) (string, error) {
	ref, ok := v.([]any)
	if !ok || len(ref) < 2 {
		return "", errors.Wrapf(ErrMalformedClause, "invalid field reference %v", v)
	}
	if kind, _ := ref[0].(string); kind != "field" {
		return "", errors.Wrapf(ErrMalformedClause, "invalid field reference kind %v", ref[0])
	}
	name, ok := ref[1].(string)
	if !ok {
		return "", errors.Wrapf(ErrMalformedClause, "field name should be string, got %T", ref[1])
	}
	return name, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.Wrapf(ErrMalformedClause, "%v is not an integer", n)
		}
		return int(n), nil
	}
	return 0, errors.Wrapf(ErrMalformedClause, "expected number, got %T", v)
}
