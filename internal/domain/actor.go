package domain

// Actor is the authenticated user performing an operation
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanManage returns true if the actor may manage the playground's slots and bookings
func (a Actor) CanManage(p *Playground) bool {
	return a.IsAdmin || p.IsOwnedBy(a.UserID)
}

// CanView returns true if the actor may read the booking: its customer,
// the playground owner or an admin
func (a Actor) CanView(b *Booking, p *Playground) bool {
	return a.IsAdmin || b.IsOwnedBy(a.UserID) || (p != nil && p.IsOwnedBy(a.UserID))
}
