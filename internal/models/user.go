package models

// Fixed user type names seeded at process start.
const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
	UserTypeCustomer = "customer"
)

// UserType classifies a user account. The recognized names are seeded by the
// bootstrap process; the registry itself accepts any unique name.
type UserType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User represents a user account in the system
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never serialize password hash
	UserTypeID   int    `json:"userTypeId"`
	UserType     string `json:"userType"` // resolved user type name, e.g. "admin"
}
