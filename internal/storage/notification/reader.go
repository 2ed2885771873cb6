package notification

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ INotificationTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns notifications newest first.
func (r *Reader) List(ctx context.Context, filter *NotificationFilter) ([]*Notification, error) {
	where := []bob.Expression{psql.Quote("user_id").EQ(psql.Arg(filter.UserID))}
	if filter.UnreadOnly {
		where = append(where, psql.Quote("is_read").EQ(psql.Arg(false)))
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.And(where...)),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Notification]())
	if err != nil {
		return nil, err
	}
	result := make([]*Notification, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *Reader) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From(tableName),
		sm.Where(psql.And(
			psql.Quote("user_id").EQ(psql.Arg(userID)),
			psql.Quote("is_read").EQ(psql.Arg(false)),
		)),
	)
	return bob.One(ctx, r.exec, query, scan.SingleColumnMapper[int64])
}
