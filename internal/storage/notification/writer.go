package notification

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
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

// InsertMany stores all notifications with a single statement.
func (w *Writer) InsertMany(ctx context.Context, creates []*NotificationCreate) ([]*Notification, error) {
	if len(creates) == 0 {
		return nil, nil
	}

	queryMods := []bob.Mod[*dialect.InsertQuery]{
		im.Into(tableName, "user_id", "title", "message", "type"),
	}
	for _, create := range creates {
		queryMods = append(queryMods, im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Title),
			psql.Arg(create.Message),
			psql.Arg(string(create.Type)),
		))
	}
	queryMods = append(queryMods, im.Returning(columns...))

	rows, err := bob.All(ctx, w.tx, psql.Insert(queryMods...), scan.StructMapper[Notification]())
	if err != nil {
		return nil, err
	}
	result := make([]*Notification, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (w *Writer) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("is_read").ToArg(true),
		um.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	affected, err := w.execAffected(ctx, query)
	return affected > 0, err
}

func (w *Writer) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("is_read").ToArg(true),
		um.Where(psql.And(
			psql.Quote("user_id").EQ(psql.Arg(userID)),
			psql.Quote("is_read").EQ(psql.Arg(false)),
		)),
	)
	return w.execAffected(ctx, query)
}

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	affected, err := w.execAffected(ctx, query)
	return affected > 0, err
}

func (w *Writer) execAffected(ctx context.Context, query bob.Query) (int64, error) {
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
