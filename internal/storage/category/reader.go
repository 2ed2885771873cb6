package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ICategoryTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the user's category, or nil when it does not exist.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	return r.findOne(ctx, psql.And(
		psql.Quote("user_id").EQ(psql.Arg(userID)),
		psql.Quote("id").EQ(psql.Arg(id)),
	))
}

// FindByName returns the user's category with the exact name, or nil.
func (r *Reader) FindByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	return r.findOne(ctx, psql.And(
		psql.Quote("user_id").EQ(psql.Arg(userID)),
		psql.Quote("name").EQ(psql.Arg(name)),
	))
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *Reader) findOne(ctx context.Context, where bob.Expression) (*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(where),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
