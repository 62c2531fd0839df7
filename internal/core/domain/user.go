package domain

// Role is the authorization role carried by a user.
type Role string

const (
	RoleApplicant Role = "APPLICANT"
	RoleManager   Role = "MANAGER"
)

// User models a seeded actor. Users are created once at startup and never change.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"-"`
}

// Identity is the authenticated caller as seen by services and guards.
type Identity struct {
	UserID int64
	Role   Role
}

// Identity returns the caller view of u.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}

func (i Identity) IsManager() bool   { return i.Role == RoleManager }
func (i Identity) IsApplicant() bool { return i.Role == RoleApplicant }
