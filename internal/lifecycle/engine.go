// Package lifecycle implements the report state machine: role-gated
// status transitions, officer assignment, audit trail production and
// best-effort notification fan-out. The engine holds no state of its
// own; atomicity of (report mutation + audit insert) is delegated to
// the store, so any number of engine instances can run concurrently.
package lifecycle

import (
	"context"
	"sort"
	"strings"

	"ecsrs/pkg/types"

	"github.com/sirupsen/logrus"
)

// ReportStore is the slice of the report repository the engine needs.
type ReportStore interface {
	CreateReport(ctx context.Context, report *types.Report, entry *types.ReportUpdate) (*types.Report, error)
	Report(ctx context.Context, reportID string) (*types.Report, error)
	ReportByTrackingCode(ctx context.Context, code string) (*types.Report, error)
	ListReports(ctx context.Context, filter types.ReportFilter) ([]*types.Report, error)
	OfficerTasks(ctx context.Context, officerID string) ([]*types.Report, error)
	UpdateReport(ctx context.Context, reportID string, fields map[string]any) (*types.Report, error)
	ApplyTransition(ctx context.Context, reportID string, from, to types.ReportStatus, fields map[string]any, entry *types.ReportUpdate) (*types.Report, error)
}

// HistoryStore reads the audit trail in creation order.
type HistoryStore interface {
	UpdatesByReport(ctx context.Context, reportID string) ([]*types.ReportUpdate, error)
}

// RoleStore resolves portal roles and assignment candidates.
type RoleStore interface {
	RoleForUser(ctx context.Context, userID string) (*types.UserRole, error)
	FieldOfficers(ctx context.Context) ([]*types.Officer, error)
}

// Notifier dispatches fire-and-forget notifications. Failures are
// logged by the engine and never abort a transition.
type Notifier interface {
	Notify(ctx context.Context, n types.Notification) error
}

// Publisher receives a domain event after every committed transition.
type Publisher interface {
	Publish(event Event)
}

// Actor is the authenticated caller as the engine sees it. The zero
// value is an anonymous caller.
type Actor struct {
	UserID        string
	Role          types.Role
	AssignedLGAID *string
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

type Engine struct {
	logger   *logrus.Logger
	reports  ReportStore
	history  HistoryStore
	roles    RoleStore
	notifier Notifier
	events   Publisher
}

func New(
	logger *logrus.Logger,
	reports ReportStore,
	history HistoryStore,
	roles RoleStore,
	notifier Notifier,
	events Publisher,
) *Engine {
	return &Engine{
		logger:   logger,
		reports:  reports,
		history:  history,
		roles:    roles,
		notifier: notifier,
		events:   events,
	}
}

// SubmitInput carries a new complaint. Category, title, description
// and area are mandatory; everything else is optional.
type SubmitInput struct {
	Category    types.ReportCategory
	Title       string
	Description string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	LGAID       string
	MediaURLs   []string
	Priority    types.ReportPriority
	IsAnonymous bool
}

// Submit creates a report in the submitted state together with its
// first audit entry. Anonymous submissions never record a reporter,
// even when the caller happens to be signed in.
func (e *Engine) Submit(ctx context.Context, actor Actor, input SubmitInput) (*types.Report, error) {

	if !input.Category.Valid() {
		return nil, validationError("a valid category is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, validationError("description is required")
	}
	if strings.TrimSpace(input.LGAID) == "" {
		return nil, validationError("lga is required")
	}
	if !input.IsAnonymous && actor.IsAnonymous() {
		return nil, unauthorizedError("sign in to submit, or submit anonymously")
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !priority.Valid() {
		return nil, validationError("unknown priority")
	}

	report := &types.Report{
		Category:            input.Category,
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		Address:             input.Address,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		LGAID:               &input.LGAID,
		MediaURLs:           input.MediaURLs,
		Status:              types.ReportStatusSubmitted,
		Priority:            priority,
		ResolutionMediaURLs: []string{},
		IsAnonymous:         input.IsAnonymous,
	}
	if report.MediaURLs == nil {
		report.MediaURLs = []string{}
	}

	var updatedBy *string
	if !input.IsAnonymous {
		id := actor.UserID
		report.ReporterID = &id
		updatedBy = &id
	}

	notes := "Report submitted"
	entry := &types.ReportUpdate{
		NewStatus: types.ReportStatusSubmitted,
		Notes:     &notes,
		UpdatedBy: updatedBy,
	}

	created, err := e.reports.CreateReport(ctx, report, entry)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"report_id":     created.ID,
		"tracking_code": created.TrackingCode,
		"category":      created.Category,
	}).Info("report submitted")

	return created, nil
}

// TrackingLookup is the public, unauthenticated read surface: a report
// plus its ordered history, keyed by tracking code.
func (e *Engine) TrackingLookup(ctx context.Context, code string) (*types.Report, []*types.ReportUpdate, error) {
	report, err := e.reports.ReportByTrackingCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	updates, err := e.history.UpdatesByReport(ctx, report.ID)
	if err != nil {
		return nil, nil, err
	}

	return report, updates, nil
}

func (e *Engine) Report(ctx context.Context, reportID string) (*types.Report, error) {
	return e.reports.Report(ctx, reportID)
}

func (e *Engine) History(ctx context.Context, reportID string) ([]*types.ReportUpdate, error) {
	return e.history.UpdatesByReport(ctx, reportID)
}

// VisibleReports lists reports scoped by the actor's role: citizens
// see their own submissions, field officers their assigned workload,
// admins everything the filter matches.
func (e *Engine) VisibleReports(ctx context.Context, actor Actor, filter types.ReportFilter) ([]*types.Report, error) {
	switch {
	case actor.Role.IsAdmin():
		return e.reports.ListReports(ctx, filter)
	case actor.Role == types.RoleFieldOfficer:
		return e.reports.OfficerTasks(ctx, actor.UserID)
	case actor.IsAnonymous():
		return nil, unauthorizedError("sign in to list reports")
	default:
		filter.Reporter = actor.UserID
		return e.reports.ListReports(ctx, filter)
	}
}

// SetPriority retriages a report. Priority is a field update, not a
// lifecycle step, so it bypasses the transition table but stays
// admin-gated.
func (e *Engine) SetPriority(ctx context.Context, actor Actor, reportID string, priority types.ReportPriority) (*types.Report, error) {
	if !actor.Role.IsAdmin() {
		return nil, unauthorizedError("only administrators can change priority")
	}
	if !priority.Valid() {
		return nil, validationError("unknown priority")
	}

	updated, err := e.reports.UpdateReport(ctx, reportID, map[string]any{"priority": priority})
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"report_id": updated.ID,
		"priority":  priority,
		"actor":     actor.UserID,
	}).Info("report priority changed")

	return updated, nil
}

// AssignableOfficers lists field officers for a report, those assigned
// to the report's own area first. The area match is an ordering hint
// only; any officer remains assignable.
func (e *Engine) AssignableOfficers(ctx context.Context, actor Actor, reportID string) ([]*types.Officer, error) {
	if !actor.Role.IsAdmin() {
		return nil, unauthorizedError("only administrators can assign reports")
	}

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	officers, err := e.roles.FieldOfficers(ctx)
	if err != nil {
		return nil, err
	}

	if report.LGAID != nil {
		lgaID := *report.LGAID
		sort.SliceStable(officers, func(i, j int) bool {
			iMatch := officers[i].AssignedLGAID != nil && *officers[i].AssignedLGAID == lgaID
			jMatch := officers[j].AssignedLGAID != nil && *officers[j].AssignedLGAID == lgaID
			return iMatch && !jMatch
		})
	}

	return officers, nil
}

func (e *Engine) publish(report *types.Report, from, to types.ReportStatus) {
	if e.events == nil {
		return
	}
	e.events.Publish(Event{
		ReportID:     report.ID,
		TrackingCode: report.TrackingCode,
		From:         from,
		To:           to,
	})
}

// notify dispatches best-effort. A notifier failure is logged and
// swallowed; the committed transition is the source of truth.
func (e *Engine) notify(ctx context.Context, n types.Notification) {
	if e.notifier == nil || n.RecipientUserID == "" {
		return
	}
	if err := e.notifier.Notify(ctx, n); err != nil {
		e.logger.WithError(err).WithFields(logrus.Fields{
			"kind":      n.Kind,
			"report_id": n.ReportID,
		}).Warn("notification dispatch failed")
	}
}
