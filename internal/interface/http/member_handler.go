package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/pkg/response"
	"github.com/oksasatya/go-member-account/pkg/validation"
)

// Registrar is the registration use case consumed by the handler.
type Registrar interface {
	Register(ctx context.Context, req application.RegistrationRequest) error
}

// PasswordChanger is the password change use case consumed by the handler.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, req application.PasswordChangeRequest) error
}

type MemberHandler struct {
	Registration   Registrar
	PasswordChange PasswordChanger
	Logger         *logrus.Logger
}

func NewMemberHandler(reg Registrar, pwd PasswordChanger, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{Registration: reg, PasswordChange: pwd, Logger: logger}
}

// StepView tells the client which registration page to show.
type StepView struct {
	Step application.RegistrationStep `json:"step"`
	Form *RegistrationForm            `json:"form,omitempty"`
}

// RegistrationForm is the blank form handed out on form-entry. Submitted
// values are never echoed back.
type RegistrationForm struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type termsRequest struct {
	Agree bool `json:"agree" form:"agree"`
}

type registerRequest struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Name            string `json:"name" form:"name"`
}

type changePasswordRequest struct {
	Email       string `json:"email" form:"email"`
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func stepView(step application.RegistrationStep) StepView {
	v := StepView{Step: step}
	if step == application.StepFormEntry {
		v.Form = &RegistrationForm{}
	}
	return v
}

// Terms GET /api/register/step1
func (h *MemberHandler) Terms(c *gin.Context) {
	response.Success(c, http.StatusOK, stepView(application.StepTermsPending), "accept the terms to continue", nil)
}

// AcceptTerms POST /api/register/step2 {agree}
// A missing or unparsable agree flag counts as not agreed.
func (h *MemberHandler) AcceptTerms(c *gin.Context) {
	var req termsRequest
	if err := c.ShouldBind(&req); err != nil {
		req.Agree = false
	}
	step := application.AcceptTerms(req.Agree)
	msg := "terms accepted"
	if step == application.StepTermsPending {
		msg = "terms not accepted"
	}
	response.Success(c, http.StatusOK, stepView(step), msg, nil)
}

// FormWithoutTerms GET /api/register/step2 sends the visitor back to the terms page.
func (h *MemberHandler) FormWithoutTerms(c *gin.Context) {
	target := strings.TrimSuffix(c.FullPath(), "step2") + "step1"
	c.Redirect(http.StatusFound, target)
}

// Submit POST /api/register/step3
func (h *MemberHandler) Submit(c *gin.Context) {
	var raw registerRequest
	if err := c.ShouldBind(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err), stepView(application.StepFormEntry))
		return
	}
	req, err := application.NewRegistrationRequest(raw.Email, raw.Password, raw.ConfirmPassword, raw.Name)
	if err == nil {
		err = h.Registration.Register(c.Request.Context(), req)
	}
	step := application.SubmitOutcome(err)
	if err != nil {
		status, msg, details := h.describe(c, err)
		response.Error(c, status, msg, details, stepView(step))
		return
	}
	response.Success(c, http.StatusCreated, stepView(step), "registration complete", nil)
}

// ChangePassword POST /api/members/password
func (h *MemberHandler) ChangePassword(c *gin.Context) {
	var raw changePasswordRequest
	if err := c.ShouldBind(&raw); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	req, err := application.NewPasswordChangeRequest(raw.Email, raw.OldPassword, raw.NewPassword)
	if err == nil {
		err = h.PasswordChange.ChangePassword(c.Request.Context(), req)
	}
	if err != nil {
		status, msg, details := h.describe(c, err)
		response.Error[any](c, status, msg, details)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

// describe maps the service error taxonomy to an HTTP status, message and
// error details.
func (h *MemberHandler) describe(c *gin.Context, err error) (int, string, any) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "invalid payload", verr.Fields
	case errors.Is(err, application.ErrDuplicateMember):
		return http.StatusConflict, "email already registered", nil
	case errors.Is(err, application.ErrMemberNotFound):
		return http.StatusNotFound, "unknown account", nil
	case errors.Is(err, application.ErrWrongPassword):
		return http.StatusUnauthorized, "current password does not match", nil
	case application.IsRetryable(err):
		return http.StatusServiceUnavailable, "temporarily unavailable, retry later", gin.H{"retryable": true}
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unexpected service error")
		}
		return http.StatusInternalServerError, "internal error", nil
	}
}
