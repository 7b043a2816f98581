package controllers

import (
	"net/http"

	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// AuthController serves login and the password-hash helper.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(req.Email, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, result)
}

type encodeRequest struct {
	Password string `json:"password" validate:"required"`
}

// Encode handles POST /encode, returning the bcrypt hash of a password.
func (c *AuthController) Encode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	hash, err := c.auth.Encode(req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"hash": hash})
}
