package domain

// Principal is the authenticated identity attached to a request once the
// authentication gate has allowed it. It carries no credential material.
type Principal struct {
	ID       UserID
	Email    string
	Username string
}
