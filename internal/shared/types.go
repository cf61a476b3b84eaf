package shared

// Authorities
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the signed-in user carried through a request
// (ở đây để tránh import cycle với user domain).
type Principal struct {
	Username  string
	Authority string
	SessionID string
}

// HasAuthority reports whether p holds authority. Admins hold every role.
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	return p.Authority == authority || p.Authority == RoleAdmin
}

// ValidAuthority reports whether a is a known authority.
func ValidAuthority(a string) bool {
	return a == RoleUser || a == RoleAdmin
}
