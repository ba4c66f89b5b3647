package entity

import (
	"time"
)

// User is one registered account.
// Password holds whatever the configured encoder produced; with the default
// encoder that is the submitted plaintext.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Token       *string
	DateCreated time.Time
}

func (u *User) String() string {
	return "<User " + u.Email + ">"
}
