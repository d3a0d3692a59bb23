package models

// Available roles. Every account starts as a participant; admins are
// promoted through the admin PATCH endpoint only.
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// GetDefaultRoles returns the roles assigned to a newly registered user
func GetDefaultRoles() Roles {
	return Roles{RoleParticipant}
}

// GetAllRoles returns every role the API accepts
func GetAllRoles() []string {
	return []string{
		RoleParticipant,
		RoleAdmin,
	}
}

// IsValidRole checks that a role name is one of the accepted roles
func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
