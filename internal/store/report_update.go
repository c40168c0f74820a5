package store

import (
	"context"
	"fmt"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reportUpdateTableName = "ecsrs.report_updates"

var reportUpdateColumns = utils.StructTagValues(types.ReportUpdate{})

type ReportUpdateRepository struct {
	pool *pgxpool.Pool
}

func NewReportUpdateRepository(pool *pgxpool.Pool) *ReportUpdateRepository {
	return &ReportUpdateRepository{pool: pool}
}

// UpdatesByReport returns the audit trail oldest-first. The seq column
// is a database sequence, so the order is stable even when two entries
// share a wall-clock timestamp.
func (r *ReportUpdateRepository) UpdatesByReport(ctx context.Context, reportID string) ([]*types.ReportUpdate, error) {

	query, args, err := psql().Select(reportUpdateColumns...).From(reportUpdateTableName).
		Where(sq.Eq{"report_id": reportID}).
		OrderBy("seq asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report updates query: %w", err)
	}

	var updates = make([]*types.ReportUpdate, 0)
	if err := pgxscan.Select(ctx, r.pool, &updates, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list report updates")
	}

	return updates, nil
}
