package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrDepartmentNotFound = errors.New("department not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid token")
