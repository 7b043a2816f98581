package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// UserController serves the admin account endpoints.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Create handles POST /admin/register.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.Create(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, user)
}

// List handles GET /admin/users.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.List()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, users)
}

// Delete handles DELETE /admin/user/{userId}.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.users.Delete(chi.URLParam(r, "userId")); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}
