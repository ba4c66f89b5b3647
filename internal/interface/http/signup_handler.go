package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/car-collection/internal/application"
	"github.com/oksasatya/car-collection/pkg/helpers"
	"github.com/oksasatya/car-collection/pkg/response"
	"github.com/oksasatya/car-collection/pkg/validation"
)

const (
	SignupTemplate       = "signup.html"
	SignupSuccessMessage = "Signup successful! You can now login."
	EmailTakenMessage    = "An account with this email already exists."
)

type SignupHandler struct {
	Svc        *userapp.Service
	Form       *validation.Form
	Logger     *logrus.Logger
	SuccessURL string
}

func NewSignupHandler(svc *userapp.Service, form *validation.Form, logger *logrus.Logger, successURL string) *SignupHandler {
	return &SignupHandler{Svc: svc, Form: form, Logger: logger, SuccessURL: successURL}
}

// ShowForm GET /auth/signup
func (h *SignupHandler) ShowForm(c *gin.Context) {
	h.render(c, SignupForm{}, nil)
}

// Submit POST /auth/signup
// Invalid input and duplicate emails re-render the form with 200; success redirects.
func (h *SignupHandler) Submit(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid form payload", nil)
		return
	}

	if errs := h.Form.Validate(form.values()); len(errs) > 0 {
		userapp.RecordInvalid()
		h.render(c, form, errs)
		return
	}

	_, err := h.Svc.Signup(c.Request.Context(), userapp.SignupInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if errors.Is(err, userapp.ErrEmailTaken) {
		errs := validation.Errors{}
		errs.Add(fieldEmail, EmailTakenMessage)
		h.render(c, form, errs)
		return
	}
	if err != nil {
		if h.Logger != nil {
			helpers.LogError(h.Logger, "signup failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"email":      form.Email,
			})
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	c.Redirect(http.StatusFound, h.SuccessURL)
}

// Success GET /auth/signup-success
func (h *SignupHandler) Success(c *gin.Context) {
	c.String(http.StatusOK, SignupSuccessMessage)
}

func (h *SignupHandler) render(c *gin.Context, form SignupForm, errs validation.Errors) {
	c.HTML(http.StatusOK, SignupTemplate, gin.H{
		"Action":    c.Request.URL.Path,
		"CSRFField": csrf.TemplateField(c.Request),
		"Fields":    form.fields(h.Form, errs),
	})
}
