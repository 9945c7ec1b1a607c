package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAcceptTerms(t *testing.T) {
	assert.Equal(t, StepFormEntry, AcceptTerms(true))
	assert.Equal(t, StepTermsPending, AcceptTerms(false))
}

func TestSubmitOutcome(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		step     RegistrationStep
		rejected bool
	}{
		{"success", nil, StepSubmitted, false},
		{"duplicate", ErrDuplicateMember, StepFormEntry, true},
		{"validation", &ValidationError{Fields: map[string]string{"email": "is required"}}, StepFormEntry, true},
		{"persistence", &PersistenceError{Op: "register", Err: errors.New("boom")}, StepFormEntry, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step := SubmitOutcome(tc.err)
			assert.Equal(t, tc.step, step)
			assert.Equal(t, tc.rejected, Rejected(tc.err))
			assert.Equal(t, tc.err == nil, step.Terminal())
		})
	}
}

// Only an explicit true ever leaves terms-pending, and only a nil error ever
// reaches submitted.
func TestWorkflowProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		agree := rapid.Bool().Draw(t, "agree")
		if got := AcceptTerms(agree); (got == StepFormEntry) != agree {
			t.Fatalf("AcceptTerms(%v) = %s", agree, got)
		}

		errs := []error{nil, ErrDuplicateMember, &ValidationError{}, &PersistenceError{Op: "x", Err: errors.New("y")}}
		err := rapid.SampledFrom(errs).Draw(t, "err")
		step := SubmitOutcome(err)
		if step.Terminal() != (err == nil) {
			t.Fatalf("SubmitOutcome(%v) = %s", err, step)
		}
		if step == StepTermsPending {
			t.Fatalf("submission must never return to the terms page")
		}
	})
}
