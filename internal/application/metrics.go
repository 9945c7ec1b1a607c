package application

import (
	"errors"
	"expvar"
)

// outcomes counts service results by operation and error kind, served on
// /api/debug/vars under "member_outcomes".
var outcomes = expvar.NewMap("member_outcomes")

func record(op string, err error) {
	outcomes.Add(op+"."+outcomeKind(err), 1)
}

func outcomeKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicateMember):
		return "duplicate"
	case errors.Is(err, ErrMemberNotFound):
		return "not_found"
	case errors.Is(err, ErrWrongPassword):
		return "wrong_password"
	default:
		return "persistence"
	}
}
