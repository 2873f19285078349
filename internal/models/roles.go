package models

// User roles, as asserted by the gateway or a JWT
const (
	RoleAdmin = "admin" // Raised event limit, may delete compositions
	RoleBeta  = "beta"
	RoleUser  = "user"
)

// NormalizeRole maps unknown or empty roles to RoleUser
func NormalizeRole(role string) string {
	switch role {
	case RoleAdmin, RoleBeta, RoleUser:
		return role
	default:
		return RoleUser
	}
}

// IsAdmin checks if a role has admin privileges
func IsAdmin(role string) bool {
	return role == RoleAdmin
}
