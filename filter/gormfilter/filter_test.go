package gormfilter_test

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/filter"
	"github.com/theplant/datefilter/filter/gormfilter"
)

type Order struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"index;not null" json:"createdAt"`
	ShippedAt *time.Time `json:"shippedAt"`
}

var db *gorm.DB

func TestMain(m *testing.M) {
	var err error
	db, err = gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=gorm dbname=gorm sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		panic(err)
	}
	m.Run()
}

func TestScope(t *testing.T) {
	// Wednesday
	at := time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)
	clock := gormfilter.WithNow(func() time.Time { return at })
	day := func(month time.Month, d int) time.Time {
		return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		field    string
		filter   *filter.Time
		opts     []gormfilter.Option
		wantSQL  string
		wantVars []any
	}{
		{
			name:    "nil filter",
			field:   "CreatedAt",
			wantSQL: `SELECT * FROM "orders"`,
		},
		{
			name:     "relative",
			field:    "CreatedAt",
			filter:   &filter.Time{Relative: lo.ToPtr(datefilter.Default())},
			wantSQL:  `SELECT * FROM "orders" WHERE "orders"."created_at" >= $1 AND "orders"."created_at" < $2`,
			wantVars: []any{day(time.April, 15), day(time.May, 15)},
		},
		{
			name:  "relative by column name with offset",
			field: "created_at",
			filter: &filter.Time{Relative: &datefilter.Relative{
				Direction: datefilter.DirectionNext, Unit: datefilter.UnitDay, Value: 7,
				Offset: &datefilter.Offset{Unit: datefilter.UnitMonth, Value: 1},
			}},
			wantSQL:  `SELECT * FROM "orders" WHERE "orders"."created_at" >= $1 AND "orders"."created_at" < $2`,
			wantVars: []any{day(time.June, 16), day(time.June, 23)},
		},
		{
			name:     "previous week starting monday",
			field:    "CreatedAt",
			filter:   &filter.Time{Relative: &datefilter.Relative{Direction: datefilter.DirectionPrevious, Unit: datefilter.UnitWeek, Value: 1}},
			opts:     []gormfilter.Option{gormfilter.WithResolveOptions(datefilter.WithWeekStart(time.Monday))},
			wantSQL:  `SELECT * FROM "orders" WHERE "orders"."created_at" >= $1 AND "orders"."created_at" < $2`,
			wantVars: []any{day(time.May, 6), day(time.May, 13)},
		},
		{
			name:     "absolute bounds",
			field:    "ShippedAt",
			filter:   &filter.Time{Eq: lo.ToPtr(at), IsNull: lo.ToPtr(false)},
			wantSQL:  `SELECT * FROM "orders" WHERE "orders"."shipped_at" = $1 AND "orders"."shipped_at" IS NOT NULL`,
			wantVars: []any{at},
		},
		{
			name:    "is null",
			field:   "ShippedAt",
			filter:  &filter.Time{IsNull: lo.ToPtr(true)},
			wantSQL: `SELECT * FROM "orders" WHERE "orders"."shipped_at" IS NULL`,
		},
		{
			name:     "not relative",
			field:    "CreatedAt",
			filter:   &filter.Time{Not: &filter.Time{Relative: &datefilter.Relative{Direction: datefilter.DirectionCurrent, Unit: datefilter.UnitYear}}},
			wantSQL:  `SELECT * FROM "orders" WHERE ("orders"."created_at" < $1 OR "orders"."created_at" >= $2)`,
			wantVars: []any{day(time.January, 1), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		},
		{
			name:  "or",
			field: "CreatedAt",
			filter: &filter.Time{Or: []*filter.Time{
				{Relative: &datefilter.Relative{Direction: datefilter.DirectionCurrent, Unit: datefilter.UnitDay}},
				{Lt: lo.ToPtr(day(time.January, 1))},
			}},
			wantSQL:  `SELECT * FROM "orders" WHERE (("orders"."created_at" >= $1 AND "orders"."created_at" < $2) OR "orders"."created_at" < $3)`,
			wantVars: []any{day(time.May, 15), day(time.May, 16), day(time.January, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []*Order
			tx := db.Scopes(gormfilter.Scope(tt.field, tt.filter, append([]gormfilter.Option{clock}, tt.opts...)...)).Find(&orders)
			require.NoError(t, tx.Error)
			require.Equal(t, tt.wantSQL, tx.Statement.SQL.String())
			if tt.wantVars == nil {
				require.Empty(t, tx.Statement.Vars)
				return
			}
			require.Equal(t, tt.wantVars, tx.Statement.Vars)
		})
	}
}

func TestScopeErrors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		filter     *filter.Time
		opts       []gormfilter.Option
		wantErrMsg string
	}{
		{
			name:       "missing field",
			field:      "DeliveredAt",
			filter:     &filter.Time{Relative: lo.ToPtr(datefilter.Default())},
			wantErrMsg: `missing field "DeliveredAt" in schema`,
		},
		{
			name:       "invalid relative",
			field:      "CreatedAt",
			filter:     &filter.Time{Relative: lo.ToPtr(datefilter.Default().SetValue(0))},
			wantErrMsg: `resolve filter for field "CreatedAt"`,
		},
		{
			name:  "too complex",
			field: "CreatedAt",
			filter: &filter.Time{Or: []*filter.Time{
				{Relative: lo.ToPtr(datefilter.Default())},
				{Relative: &datefilter.Relative{Direction: datefilter.DirectionCurrent, Unit: datefilter.UnitDay}},
			}},
			opts:       []gormfilter.Option{gormfilter.WithComplexityLimits(filter.StrictLimits)},
			wantErrMsg: "relative range count 2 exceeds limit 1",
		},
		{
			name:       "relative with bounds",
			field:      "CreatedAt",
			filter:     &filter.Time{Relative: lo.ToPtr(datefilter.Default()), Gte: lo.ToPtr(time.Now())},
			wantErrMsg: filter.ErrRelativeWithBounds.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []*Order
			err := db.Scopes(gormfilter.Scope(tt.field, tt.filter, tt.opts...)).Find(&orders).Error
			require.ErrorContains(t, err, tt.wantErrMsg)
		})
	}
}
