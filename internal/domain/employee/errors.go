package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidPhoneNumber = errors.New("phone number must be 10-14 digits")
	ErrUnauthorized       = errors.New("unauthorized to access this employee")
)
