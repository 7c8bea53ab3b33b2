package domain

import "time"

type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is the result of a successful login or registration.
type Session struct {
	User  User
	Token string
}
