package entity

// Roles emitidos por el proveedor de autenticación en el claim "role".
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleStaff  = "staff"
)

// ValidRole indica si el rol es reconocido por la API.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDoctor, RoleStaff:
		return true
	}
	return false
}
