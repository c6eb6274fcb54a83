package domain

import "time"

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleAdmin          StaffRole = "admin"
	StaffRoleManager        StaffRole = "manager"
	StaffRoleAgent          StaffRole = "agent"
	StaffRoleUnderwriter    StaffRole = "underwriter"
	StaffRoleClaimsAdjuster StaffRole = "claims_adjuster"
)

// Department enumerates the organizational units a staff user belongs to.
type Department string

const (
	DepartmentSales           Department = "sales"
	DepartmentUnderwriting    Department = "underwriting"
	DepartmentClaims          Department = "claims"
	DepartmentCustomerService Department = "customer_service"
	DepartmentManagement      Department = "management"
)

// StaffUser models an employee who can sign in to the CRM.
type StaffUser struct {
	ID           int64          `db:"staff_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Role         StaffRole      `db:"role"`
	Department   Department     `db:"department"`
	Permissions  map[string]any `db:"permissions"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// FullName joins first and last name.
func (u *StaffUser) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
