// Package auth provides authentication and authorisation for the recipe manager.
//
// It covers:
//   - bcrypt password hashing (cost 11)
//   - Signed bearer tokens carrying the user id as subject and the role list
//     as the "authorities" claim
//   - A per-request Identity carried in context.Context
//   - The owner-or-admin Policy used by every ownership-guarded operation
//   - A static role-permission mapping for route gating
//
// Roles are stored as strings ("ROLE_USER", "ROLE_ADMIN"). Ownership decisions
// always use the role stored on the account, not the one inside the token.
package auth
