package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindOneForUpdate is FindOne with the row locked until the transaction ends.
func (w *Writer) FindOneForUpdate(ctx context.Context, userID uuid.UUID, month, year int) (*Budget, error) {
	return w.findOne(ctx, userID, month, year, sm.ForUpdate())
}

// FindOrCreateForUpdate returns the locked budget for (user, month, year),
// inserting an empty one first when none exists. Concurrent callers wait on
// the unique index instead of failing on it.
func (w *Writer) FindOrCreateForUpdate(ctx context.Context, userID uuid.UUID, month, year int) (*Budget, error) {
	query := psql.Insert(
		im.Into(tableName, "user_id", "month", "year", "overall_budget", "category_budgets"),
		im.Values(
			psql.Arg(userID),
			psql.Arg(month),
			psql.Arg(year),
			psql.Arg(decimal.Zero),
			psql.Arg(CategoryLimits{}),
		),
		im.OnConflict("user_id", "month", "year").DoNothing(),
	)
	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return nil, err
	}

	b, err := w.FindOneForUpdate(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("budget %d/%d missing after insert", month, year)
	}
	return b, nil
}

// Save overwrites the overall budget and the category limits of an existing
// budget and returns the stored row.
func (w *Writer) Save(ctx context.Context, b *Budget) (*Budget, error) {
	limits := b.CategoryBudgets
	if limits == nil {
		limits = CategoryLimits{}
	}
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("overall_budget").ToArg(b.OverallBudget),
		um.SetCol("category_budgets").ToArg(limits),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(psql.Quote("id").EQ(psql.Arg(b.ID))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Budget]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
