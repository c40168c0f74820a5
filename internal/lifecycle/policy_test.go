package lifecycle

import (
	"testing"

	"ecsrs/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionMatrix(t *testing.T) {
	cases := []struct {
		name     string
		role     types.Role
		from     types.ReportStatus
		to       types.ReportStatus
		assigned bool
		want     bool
	}{
		{"admin assigns", types.RoleAdmin, types.ReportStatusSubmitted, types.ReportStatusAssigned, false, true},
		{"super admin assigns", types.RoleSuperAdmin, types.ReportStatusSubmitted, types.ReportStatusAssigned, false, true},
		{"officer cannot assign", types.RoleFieldOfficer, types.ReportStatusSubmitted, types.ReportStatusAssigned, false, false},
		{"citizen cannot assign", types.RoleCitizen, types.ReportStatusSubmitted, types.ReportStatusAssigned, false, false},

		{"admin unassigns", types.RoleAdmin, types.ReportStatusAssigned, types.ReportStatusSubmitted, false, true},
		{"officer cannot unassign", types.RoleFieldOfficer, types.ReportStatusAssigned, types.ReportStatusSubmitted, true, false},

		{"assigned officer starts", types.RoleFieldOfficer, types.ReportStatusAssigned, types.ReportStatusInProgress, true, true},
		{"unassigned officer cannot start", types.RoleFieldOfficer, types.ReportStatusAssigned, types.ReportStatusInProgress, false, false},
		{"super admin starts unassigned", types.RoleSuperAdmin, types.ReportStatusAssigned, types.ReportStatusInProgress, false, true},

		{"assigned officer resolves", types.RoleFieldOfficer, types.ReportStatusInProgress, types.ReportStatusResolved, true, true},
		{"unassigned officer cannot resolve", types.RoleFieldOfficer, types.ReportStatusInProgress, types.ReportStatusResolved, false, false},
		{"citizen cannot resolve", types.RoleCitizen, types.ReportStatusInProgress, types.ReportStatusResolved, false, false},

		{"admin closes", types.RoleAdmin, types.ReportStatusResolved, types.ReportStatusClosed, false, true},
		{"officer cannot close", types.RoleFieldOfficer, types.ReportStatusResolved, types.ReportStatusClosed, true, false},

		{"admin override skips ahead", types.RoleAdmin, types.ReportStatusSubmitted, types.ReportStatusResolved, false, true},
		{"admin override reopens", types.RoleAdmin, types.ReportStatusInProgress, types.ReportStatusSubmitted, false, true},
		{"no override from resolved", types.RoleAdmin, types.ReportStatusResolved, types.ReportStatusSubmitted, false, false},
		{"no override from closed", types.RoleSuperAdmin, types.ReportStatusClosed, types.ReportStatusSubmitted, false, false},
		{"officer has no override", types.RoleFieldOfficer, types.ReportStatusSubmitted, types.ReportStatusResolved, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := canTransition(tc.role, tc.from, tc.to, tc.assigned)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEdgeExists(t *testing.T) {
	// All pre-resolution states fan out anywhere valid.
	assert.True(t, edgeExists(types.ReportStatusSubmitted, types.ReportStatusAssigned))
	assert.True(t, edgeExists(types.ReportStatusSubmitted, types.ReportStatusResolved))
	assert.True(t, edgeExists(types.ReportStatusAssigned, types.ReportStatusSubmitted))
	assert.True(t, edgeExists(types.ReportStatusInProgress, types.ReportStatusClosed))

	// resolved only moves to closed; closed is terminal.
	assert.True(t, edgeExists(types.ReportStatusResolved, types.ReportStatusClosed))
	assert.False(t, edgeExists(types.ReportStatusResolved, types.ReportStatusSubmitted))
	assert.False(t, edgeExists(types.ReportStatusClosed, types.ReportStatusSubmitted))

	// Self loops and unknown targets are not edges.
	assert.False(t, edgeExists(types.ReportStatusSubmitted, types.ReportStatusSubmitted))
	assert.False(t, edgeExists(types.ReportStatusSubmitted, "escalated"))
}
