package enum

// Role represents an employee role
type Role string

const (
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// IsValid checks whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleCashier
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}
