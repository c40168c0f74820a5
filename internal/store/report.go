package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/k0kubun/pp"
)

const reportTableName = "ecsrs.reports"

var reportColumns = utils.StructTagValues(types.Report{})

type ReportRepository struct {
	pool           *pgxpool.Pool
	trackingPrefix string
}

func NewReportRepository(pool *pgxpool.Pool, trackingPrefix string) *ReportRepository {
	return &ReportRepository{pool: pool, trackingPrefix: trackingPrefix}
}

// CreateReport inserts the report and its first audit entry in one
// transaction, letting the database assign the unique tracking code.
// The code comes from ecsrs.generate_tracking_code(), which bumps a
// per-year counter in the same statement, so concurrent submissions
// can never collide.
func (r *ReportRepository) CreateReport(ctx context.Context, report *types.Report, entry *types.ReportUpdate) (*types.Report, error) {

	now := time.Now()
	report.ID = utils.NanoID()
	report.CreatedAt = now
	report.UpdatedAt = now

	reportMap := utils.StructToMap(report)
	reportMap["tracking_code"] = sq.Expr("ecsrs.generate_tracking_code(?)", r.trackingPrefix)

	query, args, err := psql().Insert(reportTableName).
		SetMap(reportMap).
		Suffix("RETURNING " + strings.Join(reportColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert report query: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var created = new(types.Report)
	if err := pgxscan.Get(ctx, tx, created, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to create report")
	}

	entry.ID = utils.NanoID()
	entry.ReportID = created.ID
	entry.CreatedAt = now

	insert, insertArgs, err := psql().Insert(reportUpdateTableName).
		Columns("id", "report_id", "previous_status", "new_status", "notes", "updated_by", "created_at").
		Values(entry.ID, entry.ReportID, entry.PreviousStatus, entry.NewStatus, entry.Notes, entry.UpdatedBy, entry.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report update insert: %w", err)
	}

	if _, err := tx.Exec(ctx, insert, insertArgs...); err != nil {
		return nil, utils.WrapError(err, "failed to insert submission update")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, utils.WrapError(err, "failed to commit report creation")
	}

	return created, nil
}

func (r *ReportRepository) Report(ctx context.Context, reportID string) (*types.Report, error) {

	query, args, err := psql().Select(reportColumns...).From(reportTableName).
		Where(sq.Eq{"id": reportID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report query: %w", err)
	}

	var report = new(types.Report)
	err = pgxscan.Get(ctx, r.pool, report, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	return report, nil
}

func (r *ReportRepository) ReportByTrackingCode(ctx context.Context, code string) (*types.Report, error) {

	query, args, err := psql().Select(reportColumns...).From(reportTableName).
		Where(sq.Eq{"tracking_code": strings.ToUpper(strings.TrimSpace(code))}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking lookup query: %w", err)
	}

	var report = new(types.Report)
	err = pgxscan.Get(ctx, r.pool, report, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report by tracking code: %w", err)
	}

	return report, nil
}

func (r *ReportRepository) ListReports(ctx context.Context, filter types.ReportFilter) ([]*types.Report, error) {

	builder := psql().Select(reportColumns...).From(reportTableName).
		OrderBy("created_at desc")

	builder = applyReportFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list reports query: %w", err)
	}

	var reports = make([]*types.Report, 0)
	if err := pgxscan.Select(ctx, r.pool, &reports, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list reports")
	}

	return reports, nil
}

// OfficerTasks returns an officer's open workload ordered most urgent,
// most recent first.
func (r *ReportRepository) OfficerTasks(ctx context.Context, officerID string) ([]*types.Report, error) {

	query, args, err := psql().Select(reportColumns...).From(reportTableName).
		Where(sq.Eq{"assigned_officer_id": officerID}).
		OrderBy(
			"array_position(array['low','medium','high','emergency'], priority) desc",
			"created_at desc",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate officer tasks query: %w", err)
	}

	var reports = make([]*types.Report, 0)
	if err := pgxscan.Select(ctx, r.pool, &reports, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list officer tasks")
	}

	return reports, nil
}

// UpdateReport applies a partial field update. Status never goes
// through here; status changes must use ApplyTransition so the audit
// entry lands in the same transaction.
func (r *ReportRepository) UpdateReport(ctx context.Context, reportID string, fields map[string]any) (*types.Report, error) {

	if _, ok := fields["status"]; ok {
		return nil, fmt.Errorf("status updates must go through ApplyTransition")
	}
	fields["updated_at"] = time.Now()

	if debugSQL {
		pp.Print(fields)
	}

	query, args, err := psql().Update(reportTableName).
		SetMap(fields).
		Where(sq.Eq{"id": reportID}).
		Suffix("RETURNING " + strings.Join(reportColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update report query for report %s: %w", reportID, err)
	}

	var updated = new(types.Report)
	err = pgxscan.Get(ctx, r.pool, updated, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReportNotFound
		}
		return nil, utils.WrapError(err, "failed to update report")
	}

	return updated, nil
}

// ApplyTransition performs one lifecycle step atomically: the report
// row is updated guarded by its expected current status, and the audit
// entry is inserted, in a single transaction. A guard miss (another
// writer advanced the status first) returns types.ErrConflict and
// leaves nothing behind.
func (r *ReportRepository) ApplyTransition(
	ctx context.Context,
	reportID string,
	from types.ReportStatus,
	to types.ReportStatus,
	fields map[string]any,
	entry *types.ReportUpdate,
) (*types.Report, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transition transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["status"] = to
	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(reportTableName).
		SetMap(fields).
		Where(sq.Eq{"id": reportID, "status": from}).
		Suffix("RETURNING " + strings.Join(reportColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transition query for report %s: %w", reportID, err)
	}

	var updated = new(types.Report)
	err = pgxscan.Get(ctx, tx, updated, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			// Either the report does not exist or its status moved on.
			if _, lookupErr := r.Report(ctx, reportID); errors.Is(lookupErr, types.ErrReportNotFound) {
				return nil, types.ErrReportNotFound
			}
			return nil, types.ErrConflict
		}
		return nil, utils.WrapError(err, "failed to apply transition")
	}

	entry.ID = utils.NanoID()
	entry.ReportID = reportID
	entry.CreatedAt = time.Now()

	insert, insertArgs, err := psql().Insert(reportUpdateTableName).
		Columns("id", "report_id", "previous_status", "new_status", "notes", "updated_by", "created_at").
		Values(entry.ID, entry.ReportID, entry.PreviousStatus, entry.NewStatus, entry.Notes, entry.UpdatedBy, entry.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report update insert: %w", err)
	}

	if _, err := tx.Exec(ctx, insert, insertArgs...); err != nil {
		return nil, utils.WrapError(err, "failed to insert report update")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, utils.WrapError(err, "failed to commit transition")
	}

	return updated, nil
}

func applyReportFilter(builder sq.SelectBuilder, filter types.ReportFilter) sq.SelectBuilder {
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.LGAID != "" {
		builder = builder.Where(sq.Eq{"lga_id": filter.LGAID})
	}
	if filter.AssignedOfficer != "" {
		builder = builder.Where(sq.Eq{"assigned_officer_id": filter.AssignedOfficer})
	}
	if filter.Reporter != "" {
		builder = builder.Where(sq.Eq{"reporter_id": filter.Reporter})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.Lt{"created_at": *filter.To})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"tracking_code": like},
		})
	}
	return builder
}
