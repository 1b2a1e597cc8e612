package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConversion indicates that a value could not be converted to the expected type,
// e.g. an amount that is not a number.
var ErrConversion = errors.New("conversion error")

// ErrInvalidCredentials indicates a failed username/password check.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUnauthorized indicates a missing, expired or revoked session.
var ErrUnauthorized = errors.New("unauthorized")
