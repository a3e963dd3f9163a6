package service

import "errors"

var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("account role does not match")
	ErrProfileExists      = errors.New("teacher profile already exists")
	ErrNotOwner           = errors.New("not the owner of this resource")
	ErrUnknownPlan        = errors.New("unknown subscription plan")
)
