// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"

	"github.com/blerimk/schoolroster/internal/service"
	"github.com/blerimk/schoolroster/internal/store"
)

// humanizeError maps known sentinels to operator-friendly messages. The
// login sentinel deliberately never says which part of the credentials was
// wrong.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, store.ErrNoAccountFound):
		return "No account matches that username, password and role"
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return "That username is already taken"
	case errors.Is(err, store.ErrStudentNotFound):
		return "Student record no longer exists"
	case errors.Is(err, service.ErrMissingRequiredFields):
		return "Fill in all required fields"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Username and password are required"
	}

	return err.Error()
}
