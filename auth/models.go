package auth

// Role classifies who is acting on a package. State users draft and submit;
// CMS users review and unlock; admins do either.
type Role string

const (
	RoleStateUser Role = "state_user"
	RoleCMSUser   Role = "cms_user"
	RoleAdminUser Role = "admin_user"
)

// Actor is the resolved identity stamped into revision audit records
// (updatedBy). It carries no credentials; resolving tokens to actors is the
// whole of this package's job.
type Actor struct {
	ID        string
	Email     string
	Role      Role
	StateCode string
}

// CanSubmit reports whether the role may draft and submit packages.
func (a Actor) CanSubmit() bool {
	return a.Role == RoleStateUser || a.Role == RoleAdminUser
}

// CanUnlock reports whether the role may unlock a submitted package.
func (a Actor) CanUnlock() bool {
	return a.Role == RoleCMSUser || a.Role == RoleAdminUser
}

func isValidRole(r Role) bool {
	switch r {
	case RoleStateUser, RoleCMSUser, RoleAdminUser:
		return true
	}
	return false
}
