package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the user's transaction, or nil when it does not exist.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Find returns the transactions matching the filter, newest first.
// A zero Limit returns every match.
func (r *Reader) Find(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	where := []bob.Expression{
		psql.Quote("user_id").EQ(psql.Arg(filter.UserID)),
	}
	if filter.Type != nil {
		where = append(where, psql.Quote("type").EQ(psql.Arg(string(*filter.Type))))
	}
	if filter.DateFrom != nil {
		where = append(where, psql.Quote("transaction_date").GTE(psql.Arg(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		where = append(where, psql.Quote("transaction_date").LT(psql.Arg(*filter.DateTo)))
	}
	if filter.MaxCreationTime != nil {
		where = append(where, psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime)))
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

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
