package entity

import "time"

// Roles carried on user records and token claims. Carried but not yet used
// for authorization decisions.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for the credential store.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
