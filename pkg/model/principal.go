package model

// Principal is the authenticated caller, taken from the bearer token.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// CanAccess reports whether the caller owns r or is an admin.
func (p Principal) CanAccess(r *Reservation) bool {
	return p.IsAdmin || (p.UserID != "" && p.UserID == r.UserID)
}
