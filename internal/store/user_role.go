package store

import (
	"context"
	"fmt"
	"time"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userRoleTableName = "ecsrs.user_roles"

var userRoleColumns = utils.StructTagValues(types.UserRole{})

type UserRoleRepository struct {
	pool *pgxpool.Pool
}

func NewUserRoleRepository(pool *pgxpool.Pool) *UserRoleRepository {
	return &UserRoleRepository{pool: pool}
}

// RoleForUser returns the user's role row. Users without an explicit
// row are citizens; a synthetic citizen row is returned rather than an
// error so callers never branch on NotFound.
func (r *UserRoleRepository) RoleForUser(ctx context.Context, userID string) (*types.UserRole, error) {

	query, args, err := psql().Select(userRoleColumns...).From(userRoleTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user role query: %w", err)
	}

	var role = new(types.UserRole)
	err = pgxscan.Get(ctx, r.pool, role, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return &types.UserRole{UserID: userID, Role: types.RoleCitizen}, nil
		}
		return nil, fmt.Errorf("failed to fetch user role: %w", err)
	}

	return role, nil
}

// SetRole upserts the role assignment for a user. Clearing the LGA is
// done by passing nil.
func (r *UserRoleRepository) SetRole(ctx context.Context, userID string, role types.Role, assignedLGAID *string) (*types.UserRole, error) {

	row := &types.UserRole{
		ID:            utils.NanoID(),
		UserID:        userID,
		Role:          role,
		AssignedLGAID: assignedLGAID,
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO ecsrs.user_roles (id, user_id, role, assigned_lga_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET role = EXCLUDED.role, assigned_lga_id = EXCLUDED.assigned_lga_id`

	_, err := r.pool.Exec(ctx, query, row.ID, row.UserID, row.Role, row.AssignedLGAID, row.CreatedAt)
	if err != nil {
		return nil, utils.WrapError(err, "failed to set user role")
	}

	return r.RoleForUser(ctx, userID)
}

// FieldOfficers lists assignment candidates joined with profile and
// area names for display.
func (r *UserRoleRepository) FieldOfficers(ctx context.Context) ([]*types.Officer, error) {

	query, args, err := psql().
		Select(
			"ur.user_id",
			"p.full_name",
			"p.email",
			"ur.assigned_lga_id",
			"l.name as lga_name",
		).
		From(userRoleTableName + " ur").
		LeftJoin("ecsrs.profiles p ON p.user_id = ur.user_id").
		LeftJoin("ecsrs.lgas l ON l.id = ur.assigned_lga_id").
		Where(sq.Eq{"ur.role": types.RoleFieldOfficer}).
		OrderBy("p.full_name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate field officers query: %w", err)
	}

	var officers = make([]*types.Officer, 0)
	if err := pgxscan.Select(ctx, r.pool, &officers, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list field officers")
	}

	return officers, nil
}

// AllRoles lists every explicit role assignment, newest first. Backs
// the admin user-management screen.
func (r *UserRoleRepository) AllRoles(ctx context.Context) ([]*types.UserRole, error) {

	query, args, err := psql().Select(userRoleColumns...).From(userRoleTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate roles query: %w", err)
	}

	var roles = make([]*types.UserRole, 0)
	if err := pgxscan.Select(ctx, r.pool, &roles, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list user roles")
	}

	return roles, nil
}
