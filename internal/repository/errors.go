package repository

import "errors"

var (
	// ErrUserExists is returned by Create when the username is taken
	ErrUserExists = errors.New("user already exists")
)
