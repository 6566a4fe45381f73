package domain

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity models the signed-in actor. Password is only populated by the
// static provider (plaintext, non-production); PasswordHash only by the
// remote provider.
type Identity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"-" yaml:"password"`
	PasswordHash string `json:"-" yaml:"password_hash"`
	Role         string `json:"role"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// IsAdmin reports whether the identity may use the back office.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Public returns a copy stripped of credentials, safe to persist in a
// session slot or render.
func (i Identity) Public() Identity {
	i.Password = ""
	i.PasswordHash = ""
	return i
}
