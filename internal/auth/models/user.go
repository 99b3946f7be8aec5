package models

// ============================================================
// User Model
// ============================================================

const (
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// User is identified by phone number; name and email are filled in later
// from the profile.
type User struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
