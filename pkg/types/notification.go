package types

import "time"

// NotificationKind identifies which lifecycle event a notification is
// about. The wire values match the hosted notification function.
type NotificationKind string

const (
	NotificationAssignment   NotificationKind = "assignment"
	NotificationStatusChange NotificationKind = "status_change"
	NotificationResolution   NotificationKind = "resolution"
)

// Notification is a fire-and-forget dispatch request. The recipient is
// resolved to concrete addresses by the dispatcher, not the caller.
type Notification struct {
	Kind            NotificationKind `json:"kind"`
	ReportID        string           `json:"reportId"`
	TrackingCode    string           `json:"trackingCode"`
	RecipientUserID string           `json:"recipientUserId,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// NotificationPreferences holds a user's per-channel, per-kind opt-in
// toggles. Defaults mirror the portal's column defaults: email fully
// on, SMS only for resolution and status changes.
type NotificationPreferences struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`

	EmailEnabled        bool `db:"email_enabled" json:"emailEnabled"`
	EmailOnAssignment   bool `db:"email_on_assignment" json:"emailOnAssignment"`
	EmailOnStatusChange bool `db:"email_on_status_change" json:"emailOnStatusChange"`
	EmailOnResolution   bool `db:"email_on_resolution" json:"emailOnResolution"`

	SMSEnabled        bool `db:"sms_enabled" json:"smsEnabled"`
	SMSOnStatusChange bool `db:"sms_on_status_change" json:"smsOnStatusChange"`
	SMSOnResolution   bool `db:"sms_on_resolution" json:"smsOnResolution"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultNotificationPreferences returns the opt-in defaults applied
// when a user has never saved preferences.
func DefaultNotificationPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:              userID,
		EmailEnabled:        true,
		EmailOnAssignment:   true,
		EmailOnStatusChange: true,
		EmailOnResolution:   true,
		SMSEnabled:          false,
		SMSOnStatusChange:   true,
		SMSOnResolution:     true,
	}
}

// Allows reports whether the preferences permit the given kind on the
// given channel ("email" or "sms").
func (p *NotificationPreferences) Allows(channel string, kind NotificationKind) bool {
	switch channel {
	case "email":
		if !p.EmailEnabled {
			return false
		}
		switch kind {
		case NotificationAssignment:
			return p.EmailOnAssignment
		case NotificationStatusChange:
			return p.EmailOnStatusChange
		case NotificationResolution:
			return p.EmailOnResolution
		}
	case "sms":
		if !p.SMSEnabled {
			return false
		}
		switch kind {
		case NotificationStatusChange:
			return p.SMSOnStatusChange
		case NotificationResolution:
			return p.SMSOnResolution
		}
	}
	return false
}
