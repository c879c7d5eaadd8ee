package service

// Authorize reports whether the acting user may operate on a resource owned
// by ownerID. Ownership equality is the sole criterion; there are no roles.
//
// A failed check must surface as model.ErrForbidden, never as
// model.ErrNotFound or model.ErrUnauthorized — "forbidden", "absent", and
// "not logged in" are three distinct outcomes.
func Authorize(actingUserID, ownerID string) bool {
	return actingUserID != "" && actingUserID == ownerID
}
