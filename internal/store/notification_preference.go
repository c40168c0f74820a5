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

const notificationPrefsTableName = "ecsrs.notification_preferences"

var notificationPrefsColumns = utils.StructTagValues(types.NotificationPreferences{})

type NotificationPreferencesRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationPreferencesRepository(pool *pgxpool.Pool) *NotificationPreferencesRepository {
	return &NotificationPreferencesRepository{pool: pool}
}

// PreferencesForUser returns the stored toggles, or the defaults when
// the user never saved any. Callers always get a usable value.
func (r *NotificationPreferencesRepository) PreferencesForUser(ctx context.Context, userID string) (*types.NotificationPreferences, error) {

	query, args, err := psql().Select(notificationPrefsColumns...).From(notificationPrefsTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification preferences query: %w", err)
	}

	var prefs = new(types.NotificationPreferences)
	err = pgxscan.Get(ctx, r.pool, prefs, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.DefaultNotificationPreferences(userID), nil
		}
		return nil, fmt.Errorf("failed to fetch notification preferences: %w", err)
	}

	return prefs, nil
}

func (r *NotificationPreferencesRepository) SavePreferences(ctx context.Context, prefs *types.NotificationPreferences) error {

	now := time.Now()
	if prefs.ID == "" {
		prefs.ID = utils.NanoID()
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	query := `
		INSERT INTO ecsrs.notification_preferences (
			id, user_id,
			email_enabled, email_on_assignment, email_on_status_change, email_on_resolution,
			sms_enabled, sms_on_status_change, sms_on_resolution,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id)
		DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			email_on_assignment = EXCLUDED.email_on_assignment,
			email_on_status_change = EXCLUDED.email_on_status_change,
			email_on_resolution = EXCLUDED.email_on_resolution,
			sms_enabled = EXCLUDED.sms_enabled,
			sms_on_status_change = EXCLUDED.sms_on_status_change,
			sms_on_resolution = EXCLUDED.sms_on_resolution,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		prefs.ID, prefs.UserID,
		prefs.EmailEnabled, prefs.EmailOnAssignment, prefs.EmailOnStatusChange, prefs.EmailOnResolution,
		prefs.SMSEnabled, prefs.SMSOnStatusChange, prefs.SMSOnResolution,
		prefs.CreatedAt, prefs.UpdatedAt,
	)
	return utils.ErrorWrapOrNil(err, "failed to save notification preferences")
}
