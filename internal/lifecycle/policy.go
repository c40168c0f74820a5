package lifecycle

import "ecsrs/pkg/types"

// canTransition is the single authorization policy for status changes.
// Every transition consults it exactly once; handlers and views only
// reflect its answers.
//
// super_admin deliberately holds the officer-only edges (start work,
// resolve) in addition to all admin rights, without needing to be the
// assigned officer. See DESIGN.md.
func canTransition(role types.Role, from, to types.ReportStatus, actorIsAssignedOfficer bool) bool {
	switch {
	case from == types.ReportStatusSubmitted && to == types.ReportStatusAssigned:
		return role.IsAdmin()

	case from == types.ReportStatusAssigned && to == types.ReportStatusSubmitted:
		return role.IsAdmin()

	case from == types.ReportStatusAssigned && to == types.ReportStatusInProgress:
		return officerEdge(role, actorIsAssignedOfficer)

	case from == types.ReportStatusInProgress && to == types.ReportStatusResolved:
		return officerEdge(role, actorIsAssignedOfficer)

	case from == types.ReportStatusResolved && to == types.ReportStatusClosed:
		return role.IsAdmin()
	}

	// Admin direct override: any status change away from a
	// pre-resolution state.
	return role.IsAdmin() && overridable(from) && to.Valid() && from != to
}

// edgeExists reports whether the lifecycle table contains any edge
// from -> to, regardless of who is asking. Requests for a missing edge
// are invalid transitions; requests for an existing edge by the wrong
// role are unauthorized.
func edgeExists(from, to types.ReportStatus) bool {
	if from == to || !to.Valid() {
		return false
	}
	if overridable(from) {
		return true
	}
	return from == types.ReportStatusResolved && to == types.ReportStatusClosed
}

func officerEdge(role types.Role, actorIsAssignedOfficer bool) bool {
	if role == types.RoleSuperAdmin {
		return true
	}
	return role == types.RoleFieldOfficer && actorIsAssignedOfficer
}

// overridable reports whether admins may set an arbitrary status from
// this state. resolved only moves to closed; closed is terminal.
func overridable(status types.ReportStatus) bool {
	switch status {
	case types.ReportStatusSubmitted, types.ReportStatusAssigned, types.ReportStatusInProgress:
		return true
	}
	return false
}
