package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecsrs/pkg/types"

	"github.com/sirupsen/logrus"
)

// transition runs one lifecycle step end to end: gate on the expected
// source status, check the edge exists at all, authorize, apply
// atomically, then publish the event. A store conflict (another writer
// advanced the status between load and write) surfaces as an invalid
// transition from the now-stale state.
func (e *Engine) transition(
	ctx context.Context,
	actor Actor,
	report *types.Report,
	from, to types.ReportStatus,
	fields map[string]any,
	entry *types.ReportUpdate,
) (*types.Report, error) {

	if report.Status != from {
		return nil, invalidTransitionError(report.Status, to)
	}
	if !edgeExists(from, to) {
		return nil, invalidTransitionError(from, to)
	}

	assigned := report.AssignedOfficerID != nil && *report.AssignedOfficerID == actor.UserID
	if !canTransition(actor.Role, from, to, assigned) {
		return nil, unauthorizedError("role " + string(actor.Role) + " may not perform this transition")
	}

	prev := from
	entry.PreviousStatus = &prev
	entry.NewStatus = to
	if actor.UserID != "" {
		id := actor.UserID
		entry.UpdatedBy = &id
	}

	updated, err := e.reports.ApplyTransition(ctx, report.ID, from, to, fields, entry)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			return nil, invalidTransitionError(from, to)
		}
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"report_id":     updated.ID,
		"tracking_code": updated.TrackingCode,
		"from":          from,
		"to":            to,
		"actor":         actor.UserID,
	}).Info("report transitioned")

	e.publish(updated, from, to)

	return updated, nil
}

// Assign hands a submitted report to a field officer. The officer's
// role is verified before anything is written; area mismatch is
// allowed.
func (e *Engine) Assign(ctx context.Context, actor Actor, reportID, officerID, notes string) (*types.Report, error) {

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	officerRole, err := e.roles.RoleForUser(ctx, officerID)
	if err != nil {
		return nil, err
	}
	if officerRole.Role != types.RoleFieldOfficer {
		return nil, unauthorizedError("assignee does not hold the field_officer role")
	}

	if strings.TrimSpace(notes) == "" {
		notes = "Assigned to field officer"
	}

	fields := map[string]any{
		"assigned_officer_id": officerID,
		"assigned_at":         time.Now(),
	}
	entry := &types.ReportUpdate{Notes: &notes}

	updated, err := e.transition(ctx, actor, report,
		types.ReportStatusSubmitted, types.ReportStatusAssigned, fields, entry)
	if err != nil {
		return nil, err
	}

	e.notify(ctx, types.Notification{
		Kind:            types.NotificationAssignment,
		ReportID:        updated.ID,
		TrackingCode:    updated.TrackingCode,
		RecipientUserID: officerID,
	})

	return updated, nil
}

// Unassign reverts an assigned report to submitted and clears the
// officer. Only modeled from assigned, not from in_progress.
func (e *Engine) Unassign(ctx context.Context, actor Actor, reportID string) (*types.Report, error) {

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	notes := "Assignment removed"
	fields := map[string]any{
		"assigned_officer_id": nil,
		"assigned_at":         nil,
	}
	entry := &types.ReportUpdate{Notes: &notes}

	return e.transition(ctx, actor, report,
		types.ReportStatusAssigned, types.ReportStatusSubmitted, fields, entry)
}

// Start moves an assigned report to in_progress. Only the assigned
// officer (or a super admin) may start work.
func (e *Engine) Start(ctx context.Context, actor Actor, reportID string) (*types.Report, error) {

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	notes := "Investigation started"
	entry := &types.ReportUpdate{Notes: &notes}

	return e.transition(ctx, actor, report,
		types.ReportStatusAssigned, types.ReportStatusInProgress, nil, entry)
}

// Resolve concludes the investigation. Resolution notes are mandatory;
// the reporter is notified unless the report is anonymous.
func (e *Engine) Resolve(ctx context.Context, actor Actor, reportID, notes string, mediaURLs []string) (*types.Report, error) {

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, validationError("resolution notes are required")
	}
	if mediaURLs == nil {
		mediaURLs = []string{}
	}

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"resolution_notes":      notes,
		"resolution_media_urls": mediaURLs,
		"resolved_at":           time.Now(),
	}
	entry := &types.ReportUpdate{Notes: &notes}

	updated, err := e.transition(ctx, actor, report,
		types.ReportStatusInProgress, types.ReportStatusResolved, fields, entry)
	if err != nil {
		return nil, err
	}

	if updated.ReporterID != nil {
		e.notify(ctx, types.Notification{
			Kind:            types.NotificationResolution,
			ReportID:        updated.ID,
			TrackingCode:    updated.TrackingCode,
			RecipientUserID: *updated.ReporterID,
		})
	}

	return updated, nil
}

// Close moves a resolved report to its terminal state.
func (e *Engine) Close(ctx context.Context, actor Actor, reportID string) (*types.Report, error) {

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	notes := "Report closed"
	entry := &types.ReportUpdate{Notes: &notes}

	return e.transition(ctx, actor, report,
		types.ReportStatusResolved, types.ReportStatusClosed, nil, entry)
}

// OverrideStatus is the admin escape hatch: set any status from a
// pre-resolution state. Assignment fields are kept consistent with the
// target status, and resolved_at is stamped when the override lands on
// a concluded status.
func (e *Engine) OverrideStatus(ctx context.Context, actor Actor, reportID string, to types.ReportStatus, notes string) (*types.Report, error) {

	if !to.Valid() {
		return nil, validationError("unknown status " + string(to))
	}

	report, err := e.reports.Report(ctx, reportID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if to == types.ReportStatusSubmitted {
		fields["assigned_officer_id"] = nil
		fields["assigned_at"] = nil
	}
	if to == types.ReportStatusResolved || to == types.ReportStatusClosed {
		fields["resolved_at"] = time.Now()
	}

	if strings.TrimSpace(notes) == "" {
		notes = "Status changed by administrator"
	}
	entry := &types.ReportUpdate{Notes: &notes}

	updated, err := e.transition(ctx, actor, report, report.Status, to, fields, entry)
	if err != nil {
		return nil, err
	}

	if updated.ReporterID != nil {
		e.notify(ctx, types.Notification{
			Kind:            types.NotificationStatusChange,
			ReportID:        updated.ID,
			TrackingCode:    updated.TrackingCode,
			RecipientUserID: *updated.ReporterID,
		})
	}

	return updated, nil
}
