package model

// Role separates customers from back-office administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the public profile of an account. It is what gets persisted into a
// session; the stored credential never leaves the account store.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
}

// IsAdmin reports whether the user may access the back office.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credential is a stored account record including its password. Passwords are
// kept and compared as plaintext — a deliberate carry-over from the system
// this replaces; see DESIGN.md before "fixing" it.
type Credential struct {
	User
	Password string `json:"password"`
}
