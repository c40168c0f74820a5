package types

import "time"

type ReportStatus string

const (
	ReportStatusSubmitted  ReportStatus = "submitted"
	ReportStatusAssigned   ReportStatus = "assigned"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusClosed     ReportStatus = "closed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusSubmitted, ReportStatusAssigned, ReportStatusInProgress,
		ReportStatusResolved, ReportStatusClosed:
		return true
	}
	return false
}

type ReportCategory string

const (
	CategoryIllegalDumping        ReportCategory = "illegal_dumping"
	CategoryBlockedDrainage       ReportCategory = "blocked_drainage"
	CategoryOpenDefecation        ReportCategory = "open_defecation"
	CategoryNoisePollution        ReportCategory = "noise_pollution"
	CategorySanitationIssues      ReportCategory = "sanitation_issues"
	CategoryEnvironmentalNuisance ReportCategory = "environmental_nuisance"
)

func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryIllegalDumping, CategoryBlockedDrainage, CategoryOpenDefecation,
		CategoryNoisePollution, CategorySanitationIssues, CategoryEnvironmentalNuisance:
		return true
	}
	return false
}

type ReportPriority string

const (
	PriorityLow       ReportPriority = "low"
	PriorityMedium    ReportPriority = "medium"
	PriorityHigh      ReportPriority = "high"
	PriorityEmergency ReportPriority = "emergency"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// Report is the central entity: a citizen complaint tracked from
// submission through resolution. The tracking code is assigned by the
// store at creation and never changes; reports are never deleted.
type Report struct {
	ID           string         `db:"id" json:"id"`
	TrackingCode string         `db:"tracking_code" json:"trackingCode"`
	Category     ReportCategory `db:"category" json:"category"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`

	Address   *string  `db:"address" json:"address,omitempty"`
	Latitude  *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `db:"longitude" json:"longitude,omitempty"`
	LGAID     *string  `db:"lga_id" json:"lgaId,omitempty"`

	MediaURLs []string `db:"media_urls" json:"mediaUrls"`

	Status            ReportStatus   `db:"status" json:"status"`
	Priority          ReportPriority `db:"priority" json:"priority"`
	AssignedOfficerID *string        `db:"assigned_officer_id" json:"assignedOfficerId,omitempty"`
	AssignedAt        *time.Time     `db:"assigned_at" json:"assignedAt,omitempty"`

	ResolutionNotes     *string    `db:"resolution_notes" json:"resolutionNotes,omitempty"`
	ResolutionMediaURLs []string   `db:"resolution_media_urls" json:"resolutionMediaUrls"`
	ResolvedAt          *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`

	ReporterID  *string   `db:"reporter_id" json:"reporterId,omitempty"`
	IsAnonymous bool      `db:"is_anonymous" json:"isAnonymous"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ReportUpdate is an immutable audit entry recording one status change.
// Seq is a store-supplied monotonic sequence; reading a report's
// updates ordered by seq reconstructs the status timeline.
type ReportUpdate struct {
	ID             string        `db:"id" json:"id"`
	ReportID       string        `db:"report_id" json:"reportId"`
	Seq            int64         `db:"seq" json:"seq"`
	PreviousStatus *ReportStatus `db:"previous_status" json:"previousStatus,omitempty"`
	NewStatus      ReportStatus  `db:"new_status" json:"newStatus"`
	Notes          *string       `db:"notes" json:"notes,omitempty"`
	UpdatedBy      *string       `db:"updated_by" json:"updatedBy,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
}

// ReportFilter narrows ListReports. Zero values mean "no filter".
// Form tags let the server decode it straight from the query string.
type ReportFilter struct {
	Status          ReportStatus   `form:"status"`
	Category        ReportCategory `form:"category"`
	LGAID           string         `form:"lga_id"`
	AssignedOfficer string         `form:"assigned_officer"`
	Reporter        string         `form:"-"`
	From            *time.Time     `form:"from"`
	To              *time.Time     `form:"to"`
	Search          string         `form:"q"`
}
