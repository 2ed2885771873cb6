package budget

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

var _ IBudgetTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindOne returns the budget for (user, month, year), or nil when none exists.
func (r *Reader) FindOne(ctx context.Context, userID uuid.UUID, month, year int) (*Budget, error) {
	return r.findOne(ctx, userID, month, year)
}

func (r *Reader) findOne(ctx context.Context, userID uuid.UUID, month, year int, extra ...bob.Mod[*dialect.SelectQuery]) (*Budget, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.And(
			psql.Quote("user_id").EQ(psql.Arg(userID)),
			psql.Quote("month").EQ(psql.Arg(month)),
			psql.Quote("year").EQ(psql.Arg(year)),
		)),
	}
	queryMods = append(queryMods, extra...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
