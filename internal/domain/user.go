package domain

// UserAccount is a registered user. Email is the unique key. Password holds
// a bcrypt hash; the field name is kept for compatibility with carts
// persisted by earlier builds that stored it in clear.
type UserAccount struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName is the display name stored under the customerName key at
// registration and printed on invoices.
func (u UserAccount) FullName() string {
	return u.FirstName + " " + u.LastName
}
