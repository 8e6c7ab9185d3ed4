package auth

// Permission represents a named capability in the system.
type Permission string

// Permission constants.
const (
	PermRecipeRead  Permission = "recipe:read"
	PermRecipeWrite Permission = "recipe:write"
	PermProfile     Permission = "user:profile"
	PermUserManage  Permission = "user:manage"
	PermAuditRead   Permission = "audit:read"
)

// rolePermissions maps each role to its granted permissions.
//
// Recipe writes are further narrowed to owned resources by Policy; the admin
// role passes that check unconditionally.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		PermRecipeRead,
		PermRecipeWrite,
		PermProfile,
	},
	RoleAdmin: {
		PermRecipeRead,
		PermRecipeWrite,
		PermProfile,
		PermUserManage,
		PermAuditRead,
	},
}

// HasPermission returns true if the given role has the specified permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// Can reports whether any authority on the identity grants perm.
// Authorities that are not known roles grant nothing.
func (id Identity) Can(perm Permission) bool {
	for _, a := range id.Authorities {
		if HasPermission(Role(a), perm) {
			return true
		}
	}
	return false
}
