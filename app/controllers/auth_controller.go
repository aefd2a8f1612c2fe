package controllers

import (
	"errors"
	"net/http"

	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/bind"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/middleware"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/response"
)

// AuthController handles registration, login, password recovery, profile
// updates, and the auth-check probes the frontend route guards poll.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates a new account. Duplicate emails get 409; the created
// user is returned without its credential digests.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Register(in)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Fail(w, http.StatusConflict, "Already registered, please login")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.ServerError(w, "Error in registration")
		return
	}

	response.Created(w, "Registered successfully", response.Payload{"user": user})
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns a signed token. Unknown email is
// 404, wrong password is 401.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Login(in.Email, in.Password)
	if errors.Is(err, services.ErrEmailNotFound) {
		response.NotFound(w, "Email is not registered")
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Unauthorized(w, "Invalid password")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.ServerError(w, "Error in login")
		return
	}

	response.OK(w, "Login successful", response.Payload{
		"user":  user,
		"token": token,
	})
}

type forgotPasswordInput struct {
	Email       string `json:"email"        validate:"required,email"`
	Answer      string `json:"answer"       validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ForgotPassword resets the password when the security answer matches.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotPasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err = c.auth.ResetPassword(in.Email, in.Answer, in.NewPassword)
	if errors.Is(err, services.ErrEmailNotFound) {
		response.NotFound(w, "Email is not registered")
		return
	}
	if errors.Is(err, services.ErrWrongAnswer) {
		response.NotFound(w, "Wrong email or answer")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("password reset failed", "error", err)
		response.ServerError(w, "Something went wrong")
		return
	}

	response.OK(w, "Password reset successfully", nil)
}

// UpdateProfile applies partial profile updates for the signed-in user.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized Access")
		return
	}

	var in services.ProfileInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.UpdateProfile(userID, in)
	if errors.Is(err, services.ErrPasswordTooShort) {
		response.ValidationError(w, map[string]string{"password": err.Error()})
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile update failed", "error", err)
		response.ServerError(w, "Error while updating profile")
		return
	}

	response.OK(w, "Profile updated successfully", response.Payload{"user": user})
}

// Test is a protected probe route for the admin dashboard.
func (c *AuthController) Test(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Protected routes", nil)
}

// Check answers the frontend route guards: reaching it at all means the
// middleware chain accepted the caller.
func (c *AuthController) Check(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "", response.Payload{"ok": true})
}
