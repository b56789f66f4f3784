package models

// Principal is the authenticated caller, re-read from the store on every
// request.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}
