// Package auth implements the password gate in front of the authenticated
// CRUD surface.
//
// The log has a single owner, so there is no user table: one shared
// password (hashed with bcrypt at startup) unlocks a server-side session.
// The shared read-only view stays outside the gate on purpose — share
// tokens are the only credential on that path.
package auth
