package domain

type Role string

const (
	RoleStudent    Role = "Student"
	RoleTeacher    Role = "Teacher"
	RoleParent     Role = "Parent"
	RoleAccountant Role = "Accountant"
	RoleBursar     Role = "Bursar"
	RoleDirector   Role = "Director"
	// RoleUnknown is the parse result for any role string outside the
	// enumeration. The store persists such strings untouched; the dashboard
	// renders them as "Unknown role".
	RoleUnknown Role = ""
)

// Roles lists the recognized roles in dispatch order.
var Roles = []Role{
	RoleStudent,
	RoleTeacher,
	RoleParent,
	RoleAccountant,
	RoleBursar,
	RoleDirector,
}

// ParseRole maps a stored role string onto the closed enumeration.
// The match is exact and case-sensitive; anything else is RoleUnknown.
func ParseRole(s string) Role {
	for _, r := range Roles {
		if s == string(r) {
			return r
		}
	}
	return RoleUnknown
}

func IsValidRole(s string) bool {
	return ParseRole(s) != RoleUnknown
}
