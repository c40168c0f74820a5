package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailSender struct {
	sent []string
	fail error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, to, _, _ string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMSSender struct {
	sent []string
	fail error
}

func (f *fakeSMSSender) SendSMS(_ context.Context, to, _ string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakePrefsStore struct {
	prefs map[string]*types.NotificationPreferences
}

func (f *fakePrefsStore) PreferencesForUser(_ context.Context, userID string) (*types.NotificationPreferences, error) {
	if p, ok := f.prefs[userID]; ok {
		return p, nil
	}
	return types.DefaultNotificationPreferences(userID), nil
}

type fakeProfileStore struct {
	profiles map[string]*types.Profile
}

func (f *fakeProfileStore) ProfileByUserID(_ context.Context, userID string) (*types.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, types.ErrUserNotFound
}

func newDispatcherFixture() (*Dispatcher, *fakeEmailSender, *fakeSMSSender, *fakePrefsStore, *fakeProfileStore) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	prefs := &fakePrefsStore{prefs: map[string]*types.NotificationPreferences{}}
	profiles := &fakeProfileStore{profiles: map[string]*types.Profile{
		"user-1": {
			UserID: "user-1",
			Email:  utils.StringPtr("user1@example.com"),
			Phone:  utils.StringPtr("+2348030000001"),
		},
	}}

	return NewDispatcher(logger, prefs, profiles, email, sms), email, sms, prefs, profiles
}

func notification(kind types.NotificationKind) types.Notification {
	return types.Notification{
		Kind:            kind,
		ReportID:        "r1",
		TrackingCode:    "ECR-2026-0001",
		RecipientUserID: "user-1",
	}
}

func TestNotifyDefaultPreferences(t *testing.T) {
	d, email, sms, _, _ := newDispatcherFixture()

	// Defaults: email on for everything, SMS off entirely.
	err := d.Notify(context.Background(), notification(types.NotificationResolution))
	require.NoError(t, err)

	assert.Equal(t, []string{"user1@example.com"}, email.sent)
	assert.Empty(t, sms.sent)
}

func TestNotifyHonorsChannelToggles(t *testing.T) {
	d, email, sms, prefs, _ := newDispatcherFixture()

	p := types.DefaultNotificationPreferences("user-1")
	p.EmailOnResolution = false
	p.SMSEnabled = true
	prefs.prefs["user-1"] = p

	err := d.Notify(context.Background(), notification(types.NotificationResolution))
	require.NoError(t, err)

	assert.Empty(t, email.sent)
	assert.Equal(t, []string{"+2348030000001"}, sms.sent)
}

func TestNotifySMSNeverCarriesAssignments(t *testing.T) {
	d, _, sms, prefs, _ := newDispatcherFixture()

	p := types.DefaultNotificationPreferences("user-1")
	p.SMSEnabled = true
	prefs.prefs["user-1"] = p

	err := d.Notify(context.Background(), notification(types.NotificationAssignment))
	require.NoError(t, err)

	// There is no SMS toggle for assignments; the channel stays quiet.
	assert.Empty(t, sms.sent)
}

func TestNotifyRecipientWithoutProfile(t *testing.T) {
	d, email, _, _, _ := newDispatcherFixture()

	n := notification(types.NotificationStatusChange)
	n.RecipientUserID = "ghost"

	err := d.Notify(context.Background(), n)
	require.NoError(t, err)
	assert.Empty(t, email.sent)
}

func TestNotifyRecipientWithoutAddresses(t *testing.T) {
	d, email, sms, _, profiles := newDispatcherFixture()
	profiles.profiles["user-1"] = &types.Profile{UserID: "user-1"}

	err := d.Notify(context.Background(), notification(types.NotificationResolution))
	require.NoError(t, err)

	assert.Empty(t, email.sent)
	assert.Empty(t, sms.sent)
}

func TestNotifyJoinsChannelFailures(t *testing.T) {
	d, email, sms, prefs, _ := newDispatcherFixture()

	p := types.DefaultNotificationPreferences("user-1")
	p.SMSEnabled = true
	prefs.prefs["user-1"] = p

	email.fail = errors.New("provider 500")
	sms.fail = errors.New("provider timeout")

	err := d.Notify(context.Background(), notification(types.NotificationResolution))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "sms")
}
