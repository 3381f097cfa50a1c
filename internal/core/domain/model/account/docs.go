// Package account models the identities interacting with the locker system.
// Authentication itself is an external concern: the HTTP layer resolves
// credentials into an Identity, and use cases only check that the already
// authenticated caller carries a sufficient role.
package account
