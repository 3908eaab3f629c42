package mbql

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestBuildAndMarshal(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected string
	}{
		{
			name:     "previous 30 days",
			params:   Params{Amount: -30, Unit: "day"},
			expected: `["time-interval",["field","Created At",null],-30,"day"]`,
		},
		{
			name:     "previous 2 quarters or this quarter",
			params:   Params{Amount: -2, Unit: "quarter", IncludeCurrent: true},
			expected: `["time-interval",["field","Created At",null],-2,"quarter",{"include-current":true}]`,
		},
		{
			name:     "this year",
			params:   Params{Current: true, Unit: "year"},
			expected: `["time-interval",["field","Created At",null],"current","year"]`,
		},
		{
			name:     "previous 3 weeks starting 1 quarter ago",
			params:   Params{Amount: -3, Unit: "week", OffsetAmount: -1, OffsetUnit: "quarter"},
			expected: `["relative-time-interval",["field","Created At",null],-3,"week",-1,"quarter"]`,
		},
		{
			name:     "next 7 days starting 1 month from now",
			params:   Params{Amount: 7, Unit: "day", OffsetAmount: 1, OffsetUnit: "month"},
			expected: `["relative-time-interval",["field","Created At",null],7,"day",1,"month"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build("Created At", tt.params)
			require.NoError(t, err)

			data, err := c.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))

			parsed, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
			assert.Equal(t, tt.params, parsed.Params())
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		params     Params
		wantErrMsg string
	}{
		{
			name:       "empty field",
			params:     Params{Amount: -1, Unit: "day"},
			wantErrMsg: "field name is empty: malformed clause",
		},
		{
			name:       "unknown unit",
			field:      "Created At",
			params:     Params{Amount: -1, Unit: "fortnight"},
			wantErrMsg: `unknown unit "fortnight": malformed clause`,
		},
		{
			name:       "zero amount",
			field:      "Created At",
			params:     Params{Unit: "day"},
			wantErrMsg: "amount must not be zero: malformed clause",
		},
		{
			name:       "offset with include current",
			field:      "Created At",
			params:     Params{Amount: -1, Unit: "day", IncludeCurrent: true, OffsetAmount: -1, OffsetUnit: "day"},
			wantErrMsg: "offset cannot be combined with include-current: malformed clause",
		},
		{
			name:       "mixed signs",
			field:      "Created At",
			params:     Params{Amount: -1, Unit: "day", OffsetAmount: 1, OffsetUnit: "day"},
			wantErrMsg: "amount and offset amount must have the same sign: malformed clause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.field, tt.params)
			require.ErrorIs(t, err, ErrMalformedClause)
			require.EqualError(t, err, tt.wantErrMsg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "not json", data: `{`, wantErr: ErrMalformedClause},
		{name: "too short", data: `["time-interval",["field","Created At",null],-1]`, wantErr: ErrMalformedClause},
		{name: "unknown operator", data: `["between",["field","Created At",null],-1,"day"]`, wantErr: ErrUnsupportedOperator},
		{name: "bad field", data: `["time-interval",["expression","x"],-1,"day"]`, wantErr: ErrMalformedClause},
		{name: "fractional amount", data: `["time-interval",["field","Created At",null],-1.5,"day"]`, wantErr: ErrMalformedClause},
		{name: "unknown amount", data: `["time-interval",["field","Created At",null],"last","day"]`, wantErr: ErrMalformedClause},
		{name: "missing offset unit", data: `["relative-time-interval",["field","Created At",null],-1,"day",-1]`, wantErr: ErrMalformedClause},
		{name: "bad options", data: `["time-interval",["field","Created At",null],-1,"day",true]`, wantErr: ErrMalformedClause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
		})
	}
}

func TestParseIgnoresNilOptions(t *testing.T) {
	c, err := Parse([]byte(`["time-interval",["field","Created At",null],-7,"day",null]`))
	require.NoError(t, err)
	require.False(t, c.IncludeCurrent)
	require.Equal(t, -7, c.Amount)
}

func TestProto(t *testing.T) {
	for _, params := range []Params{
		{Amount: -30, Unit: "day"},
		{Amount: 6, Unit: "hour", IncludeCurrent: true},
		{Current: true, Unit: "week"},
		{Amount: -3, Unit: "month", OffsetAmount: -7, OffsetUnit: "month"},
	} {
		c, err := Build("Created At", params)
		require.NoError(t, err)

		list, err := c.ToProto()
		require.NoError(t, err)
		require.Equal(t, string(c.Operator), list.Values[0].GetStringValue())

		parsed, err := FromProto(list)
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := FromProto(nil)
	require.ErrorIs(t, err, ErrMalformedClause)

	list, err := structpb.NewList([]any{"time-interval", []any{"field", "Created At", nil}, 1})
	require.NoError(t, err)
	_, err = FromProto(list)
	require.ErrorIs(t, err, ErrMalformedClause)
}
