package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ecsrs/pkg/types"
)

// fakeReportStore mimics the repository's guarded-write semantics in
// memory, including the zero-row conflict on a stale expected status.
type fakeReportStore struct {
	mu      sync.Mutex
	nextID  int
	reports map[string]*types.Report
	updates map[string][]*types.ReportUpdate
	seq     int64

	failCreate error
	failApply  error
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{
		reports: map[string]*types.Report{},
		updates: map[string][]*types.ReportUpdate{},
	}
}

func (f *fakeReportStore) appendUpdate(reportID string, entry *types.ReportUpdate) {
	f.seq++
	clone := *entry
	clone.ID = fmt.Sprintf("u%d", f.seq)
	clone.ReportID = reportID
	clone.Seq = f.seq
	clone.CreatedAt = time.Now()
	f.updates[reportID] = append(f.updates[reportID], &clone)
}

func (f *fakeReportStore) CreateReport(_ context.Context, report *types.Report, entry *types.ReportUpdate) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return nil, f.failCreate
	}

	f.nextID++
	clone := *report
	clone.ID = fmt.Sprintf("r%d", f.nextID)
	clone.TrackingCode = fmt.Sprintf("ECR-2026-%04d", f.nextID)
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt

	f.reports[clone.ID] = &clone
	f.appendUpdate(clone.ID, entry)

	result := clone
	return &result, nil
}

func (f *fakeReportStore) Report(_ context.Context, reportID string) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	report, ok := f.reports[reportID]
	if !ok {
		return nil, types.ErrReportNotFound
	}
	clone := *report
	return &clone, nil
}

func (f *fakeReportStore) ReportByTrackingCode(_ context.Context, code string) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, report := range f.reports {
		if report.TrackingCode == code {
			clone := *report
			return &clone, nil
		}
	}
	return nil, types.ErrReportNotFound
}

func (f *fakeReportStore) ListReports(_ context.Context, filter types.ReportFilter) ([]*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*types.Report
	for _, report := range f.reports {
		if filter.Reporter != "" {
			if report.ReporterID == nil || *report.ReporterID != filter.Reporter {
				continue
			}
		}
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		clone := *report
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeReportStore) OfficerTasks(_ context.Context, officerID string) ([]*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*types.Report
	for _, report := range f.reports {
		if report.AssignedOfficerID != nil && *report.AssignedOfficerID == officerID {
			clone := *report
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeReportStore) UpdateReport(_ context.Context, reportID string, fields map[string]any) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	report, ok := f.reports[reportID]
	if !ok {
		return nil, types.ErrReportNotFound
	}

	for column, value := range fields {
		if column == "priority" {
			report.Priority = value.(types.ReportPriority)
		}
	}
	report.UpdatedAt = time.Now()

	clone := *report
	return &clone, nil
}

func (f *fakeReportStore) ApplyTransition(_ context.Context, reportID string, from, to types.ReportStatus, fields map[string]any, entry *types.ReportUpdate) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failApply != nil {
		return nil, f.failApply
	}

	report, ok := f.reports[reportID]
	if !ok {
		return nil, types.ErrReportNotFound
	}
	if report.Status != from {
		return nil, types.ErrConflict
	}

	report.Status = to
	for column, value := range fields {
		switch column {
		case "assigned_officer_id":
			if value == nil {
				report.AssignedOfficerID = nil
			} else {
				id := value.(string)
				report.AssignedOfficerID = &id
			}
		case "assigned_at":
			if value == nil {
				report.AssignedAt = nil
			} else {
				at := value.(time.Time)
				report.AssignedAt = &at
			}
		case "resolution_notes":
			notes := value.(string)
			report.ResolutionNotes = &notes
		case "resolution_media_urls":
			report.ResolutionMediaURLs = value.([]string)
		case "resolved_at":
			at := value.(time.Time)
			report.ResolvedAt = &at
		}
	}
	report.UpdatedAt = time.Now()

	f.appendUpdate(reportID, entry)

	clone := *report
	return &clone, nil
}

func (f *fakeReportStore) UpdatesByReport(_ context.Context, reportID string) ([]*types.ReportUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*types.ReportUpdate{}, f.updates[reportID]...), nil
}

type fakeRoleStore struct {
	roles    map[string]*types.UserRole
	officers []*types.Officer
}

func (f *fakeRoleStore) RoleForUser(_ context.Context, userID string) (*types.UserRole, error) {
	if role, ok := f.roles[userID]; ok {
		return role, nil
	}
	return &types.UserRole{UserID: userID, Role: types.RoleCitizen}, nil
}

func (f *fakeRoleStore) FieldOfficers(_ context.Context) ([]*types.Officer, error) {
	return f.officers, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []types.Notification
	fail error
}

func (f *fakeNotifier) Notify(_ context.Context, n types.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) kinds() []types.NotificationKind {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []types.NotificationKind
	for _, n := range f.sent {
		out = append(out, n.Kind)
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakePublisher) Publish(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)
}
