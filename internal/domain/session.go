package domain

// Role is the portal role carried in a session token
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Session is the authenticated caller of a portal request. Token is the
// bearer credential issued by the loan service and is forwarded upstream
// unchanged.
type Session struct {
	Token   string
	Subject string
	UserID  int64
	Role    Role
	Name    string
}

// IsAdmin reports whether the session belongs to an administrator
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
