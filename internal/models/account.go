package models

// Account is a registered user identity.
//
// Passwords are stored and compared as plain strings; this service has
// no hashing or session layer.
type Account struct {
	AccountID int    `db:"account_id" json:"account_id"`
	Username  string `db:"username" json:"username"`
	Password  string `db:"password" json:"password"`
}
