package service

import (
	"errors"

	"github.com/ratehub/ratehub-backend/pkg/util"
)

// Input-rule errors shared by signup and admin user creation. The same
// rules apply on both paths.
var (
	ErrInvalidName      = errors.New("name must be 20-60 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidAddress   = errors.New("address must be max 400 characters")
	ErrWeakPassword     = errors.New("password must be 8-16 chars, include 1 uppercase & 1 special char")
	ErrInvalidStoreName = errors.New("store name must be 20-60 characters")
	ErrInvalidRole      = errors.New("invalid role")
)

func validateUserInput(name, email, password, address string) error {
	if !util.ValidName(name) {
		return ErrInvalidName
	}
	if !util.ValidEmail(email) {
		return ErrInvalidEmail
	}
	if !util.ValidPassword(password) {
		return ErrWeakPassword
	}
	if !util.ValidAddress(address) {
		return ErrInvalidAddress
	}
	return nil
}

func validateStoreInput(name, address string) error {
	if !util.ValidName(name) {
		return ErrInvalidStoreName
	}
	if !util.ValidAddress(address) {
		return ErrInvalidAddress
	}
	return nil
}
