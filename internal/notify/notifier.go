// Package notify dispatches lifecycle notifications over email and
// SMS, honoring each user's saved channel preferences. Dispatch is
// best-effort by contract: the lifecycle engine logs and ignores any
// error returned from here.
package notify

import (
	"context"
	"errors"
	"fmt"

	"ecsrs/pkg/types"

	"github.com/sirupsen/logrus"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type PreferencesStore interface {
	PreferencesForUser(ctx context.Context, userID string) (*types.NotificationPreferences, error)
}

type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID string) (*types.Profile, error)
}

type Dispatcher struct {
	logger   *logrus.Logger
	prefs    PreferencesStore
	profiles ProfileStore
	email    EmailSender
	sms      SMSSender
}

func NewDispatcher(
	logger *logrus.Logger,
	prefs PreferencesStore,
	profiles ProfileStore,
	email EmailSender,
	sms SMSSender,
) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		prefs:    prefs,
		profiles: profiles,
		email:    email,
		sms:      sms,
	}
}

var statusLabels = map[types.NotificationKind]string{
	types.NotificationAssignment:   "assigned to you for investigation",
	types.NotificationStatusChange: "updated",
	types.NotificationResolution:   "resolved",
}

// Notify resolves the recipient's addresses and preferences, then fans
// out to every permitted channel. Channel failures are joined so the
// caller can log them; a recipient without contact details is not an
// error.
func (d *Dispatcher) Notify(ctx context.Context, n types.Notification) error {

	profile, err := d.profiles.ProfileByUserID(ctx, n.RecipientUserID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			d.logger.WithField("user_id", n.RecipientUserID).Debug("notification recipient has no profile")
			return nil
		}
		return fmt.Errorf("load recipient profile: %w", err)
	}

	prefs, err := d.prefs.PreferencesForUser(ctx, n.RecipientUserID)
	if err != nil {
		return fmt.Errorf("load recipient preferences: %w", err)
	}

	message := n.Message
	if message == "" {
		message = fmt.Sprintf("Report %s has been %s.", n.TrackingCode, statusLabels[n.Kind])
	}
	subject := fmt.Sprintf("ECSRS Report Update - %s", n.TrackingCode)

	var errs []error

	if d.email != nil && profile.Email != nil && prefs.Allows("email", n.Kind) {
		if err := d.email.SendEmail(ctx, *profile.Email, subject, message); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}

	if d.sms != nil && profile.Phone != nil && prefs.Allows("sms", n.Kind) {
		if err := d.sms.SendSMS(ctx, *profile.Phone, message); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		}
	}

	return errors.Join(errs...)
}
