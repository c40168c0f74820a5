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

const profileTableName = "ecsrs.profiles"

var profileColumns = utils.StructTagValues(types.Profile{})

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) ProfileByUserID(ctx context.Context, userID string) (*types.Profile, error) {

	query, args, err := psql().Select(profileColumns...).From(profileTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile query: %w", err)
	}

	var profile = new(types.Profile)
	err = pgxscan.Get(ctx, r.pool, profile, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *types.Profile) error {

	now := time.Now()
	profile.ID = utils.NanoID()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	profileMap := utils.StructToMap(profile)

	query, args, err := psql().Insert(profileTableName).SetMap(profileMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert profile query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create profile")
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*types.Profile, error) {

	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(profileTableName).
		SetMap(fields).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update profile query for user %s: %w", userID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, utils.WrapError(err, "failed to update profile")
	}
	if tag.RowsAffected() == 0 {
		return nil, types.ErrUserNotFound
	}

	return r.ProfileByUserID(ctx, userID)
}

func (r *ProfileRepository) ProfilesByUserIDs(ctx context.Context, userIDs []string) ([]*types.Profile, error) {
	if len(userIDs) == 0 {
		return []*types.Profile{}, nil
	}

	query, args, err := psql().Select(profileColumns...).From(profileTableName).
		Where(sq.Eq{"user_id": userIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profiles query: %w", err)
	}

	var profiles = make([]*types.Profile, 0)
	if err := pgxscan.Select(ctx, r.pool, &profiles, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list profiles")
	}

	return profiles, nil
}
