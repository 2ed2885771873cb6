package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// Insert creates a new transaction and returns the stored row.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	cols := []string{"user_id", "type", "amount", "category", "description"}
	vals := []bob.Expression{
		psql.Arg(create.UserID),
		psql.Arg(string(create.Type)),
		psql.Arg(create.Amount),
		psql.Arg(create.Category),
		psql.Arg(create.Description),
	}
	if !create.TransactionDate.IsZero() {
		cols = append(cols, "transaction_date")
		vals = append(vals, psql.Arg(create.TransactionDate))
	}

	query := psql.Insert(
		im.Into(tableName, cols...),
		im.Values(vals...),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateReceipt sets the receipt URL, the only field mutable after creation.
func (w *Writer) UpdateReceipt(ctx context.Context, userID, id uuid.UUID, receiptURL string) (bool, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("receipt_url").ToArg(receiptURL),
		um.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	return execAffected(ctx, w.tx, query)
}

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	return execAffected(ctx, w.tx, query)
}

func execAffected(ctx context.Context, exec bob.Executor, query bob.Query) (bool, error) {
	result, err := bob.Exec(ctx, exec, query)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
