package types

import "time"

type Role string

const (
	RoleCitizen      Role = "citizen"
	RoleFieldOfficer Role = "field_officer"
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleFieldOfficer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserRole augments an identity-provider user with a portal role.
// AssignedLGAID is meaningful only for field officers, whose task list
// is scoped to that area.
type UserRole struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Role          Role      `db:"role" json:"role"`
	AssignedLGAID *string   `db:"assigned_lga_id" json:"assignedLgaId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	FullName  *string   `db:"full_name" json:"fullName,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	LGAID     *string   `db:"lga_id" json:"lgaId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Officer is the assignment-candidate view: a field officer role row
// joined with its profile and area name for display.
type Officer struct {
	UserID        string  `db:"user_id" json:"userId"`
	FullName      *string `db:"full_name" json:"fullName,omitempty"`
	Email         *string `db:"email" json:"email,omitempty"`
	AssignedLGAID *string `db:"assigned_lga_id" json:"assignedLgaId,omitempty"`
	LGAName       *string `db:"lga_name" json:"lgaName,omitempty"`
}
