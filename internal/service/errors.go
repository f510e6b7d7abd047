package service

import "errors"

var errEmptyJWTSecret = errors.New("jwt secret is empty")
