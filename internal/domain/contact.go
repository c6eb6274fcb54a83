package domain

import "time"

// Contact is a person at a client company.
type Contact struct {
	ID        int64     `db:"contact_id" json:"contact_id"`
	CompanyID int64     `db:"company_id" json:"company_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     *string   `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	JobTitle  *string   `db:"job_title" json:"job_title"`
	IsPrimary bool      `db:"is_primary" json:"is_primary"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
