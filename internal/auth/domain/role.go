package domain

import "time"

// RoleName is the closed set of permission classes. Route guards compare
// against these values, so free-text role names are never accepted.
type RoleName string

const (
	RoleSuperAdmin      RoleName = "super_admin"
	RoleAdmin           RoleName = "admin"
	RoleDirector        RoleName = "director"
	RoleNurse           RoleName = "nurse"
	RolePhysiotherapist RoleName = "physiotherapist"
	RolePsychologist    RoleName = "psychologist"
	RoleSocialWorker    RoleName = "social_worker"
	RoleNotSpecified    RoleName = "not_specified"
)

// AllRoleNames returns the role catalog in seeding order.
func AllRoleNames() []RoleName {
	return []RoleName{
		RoleSuperAdmin,
		RoleAdmin,
		RoleDirector,
		RoleNurse,
		RolePhysiotherapist,
		RolePsychologist,
		RoleSocialWorker,
		RoleNotSpecified,
	}
}

// Valid reports membership in the closed enumeration.
func (n RoleName) Valid() bool {
	switch n {
	case RoleSuperAdmin, RoleAdmin, RoleDirector, RoleNurse,
		RolePhysiotherapist, RolePsychologist, RoleSocialWorker, RoleNotSpecified:
		return true
	}
	return false
}

func (n RoleName) String() string { return string(n) }

type Role struct {
	ID          int64
	Name        RoleName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
