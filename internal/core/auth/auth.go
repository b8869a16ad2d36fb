package auth

import "slices"

const (
	RoleAdmin     = "Admin"
	RoleForumUser = "ForumUser"
)

// DefaultRoles are granted to every registered account.
var DefaultRoles = []string{RoleForumUser}

// Context is the caller identity taken from a validated access token.
type Context struct {
	UserID   string
	Username string
	Roles    []string
}

func (c Context) Authenticated() bool { return c.UserID != "" }

func (c Context) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

func (c Context) IsAdmin() bool { return c.HasRole(RoleAdmin) }

// CanModify reports whether the caller may change a resource owned by ownerID.
func (c Context) CanModify(ownerID string) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Authenticated() && c.UserID == ownerID
}
