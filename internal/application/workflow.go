package application

import "errors"

// RegistrationStep is the position of a visitor in the sign-up flow.
// The flow itself is stateless; callers carry the step between requests.
type RegistrationStep string

const (
	StepTermsPending RegistrationStep = "terms-pending"
	StepFormEntry    RegistrationStep = "form-entry"
	StepSubmitted    RegistrationStep = "submitted"
)

// AcceptTerms moves past the terms page only on an explicit affirmative.
func AcceptTerms(agree bool) RegistrationStep {
	if agree {
		return StepFormEntry
	}
	return StepTermsPending
}

// SubmitOutcome maps the result of Register to the next step. Any failure
// sends the visitor back to the form with the submission discarded.
func SubmitOutcome(err error) RegistrationStep {
	if err == nil {
		return StepSubmitted
	}
	return StepFormEntry
}

// Rejected reports whether err sent the visitor back to the form because of
// the submitted data rather than an outage.
func Rejected(err error) bool {
	return errors.Is(err, ErrDuplicateMember) || errors.Is(err, ErrValidation)
}

func (s RegistrationStep) Terminal() bool { return s == StepSubmitted }
