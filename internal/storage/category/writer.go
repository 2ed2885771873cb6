package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	query := psql.Insert(
		im.Into(tableName, "user_id", "name", "type"),
		im.Values(psql.Arg(create.UserID), psql.Arg(create.Name), psql.Arg(create.Type)),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
