package budget

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "budgets"

var columns = []any{
	"id", "user_id", "month", "year", "overall_budget", "category_budgets", "created_at", "updated_at",
}

// Budget is the spending plan of one user for one calendar month.
// Month is zero based (0 = January).
type Budget struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	Month           int             `db:"month"`
	Year            int             `db:"year"`
	OverallBudget   decimal.Decimal `db:"overall_budget"`
	CategoryBudgets CategoryLimits  `db:"category_budgets"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// CategoryLimit is a per-category spending limit. Category holds either a
// category UUID or a category name, both forms exist in stored data.
type CategoryLimit struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryLimits is stored as a JSONB array.
type CategoryLimits []CategoryLimit

// Sum returns the total of all limit amounts.
func (l CategoryLimits) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, limit := range l {
		total = total.Add(limit.Amount)
	}
	return total
}

func (l CategoryLimits) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]CategoryLimit(l))
}

func (l *CategoryLimits) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = CategoryLimits{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("budget: unsupported category_budgets type")
	}

	var limits []CategoryLimit
	if err := json.Unmarshal(raw, &limits); err != nil {
		return err
	}
	*l = limits
	return nil
}

// IBudgetTable defines the read operations on budgets.
type IBudgetTable interface {
	FindOne(ctx context.Context, userID uuid.UUID, month, year int) (*Budget, error)
}
