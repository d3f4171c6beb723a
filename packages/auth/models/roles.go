package models

// Available roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetDefaultRoles returns the roles assigned to a new user
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// IsValidRole checks whether a role name is known
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
