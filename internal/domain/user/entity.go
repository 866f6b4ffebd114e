package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Owns an organization, its employees and salary models
	RoleEmployee Role = "employee" // Clocks in and out, reads own payslips
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join: owning admin for employees, self for admins
	AdminID string
}

// IsAdmin checks if user owns an organization
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
