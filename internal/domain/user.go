package domain

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsStaff reports whether the role grants access to the dashboard API at all.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// User is a staff account. An admin is affiliated with exactly one museum;
// a superadmin has no affiliation and sees everything.
type User struct {
	ID           int64     `json:"id" gorm:"column:id;primaryKey"`
	Name         string    `json:"name" gorm:"column:name"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role" gorm:"column:role"`
	MuseumID     *int64    `json:"museum_id,omitempty" gorm:"column:museum_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }
