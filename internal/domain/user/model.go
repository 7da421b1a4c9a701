package user

// Role is the capability level granted by the account service.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Principal identifies the authenticated caller as resolved by the account
// service. The orchestration core trusts the role carried here and performs
// its own capability check on privileged operations.
type Principal struct {
	UserID      string
	DisplayName string
	Role        Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
