package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// CategoryController serves the category catalog endpoints. Create and
// delete are admin-only at the routing layer.
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// Create handles POST /admin/categories. The request is multipart with a
// JSON part named "category" and the image under "file".
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	filename, content, err := readUpload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var in services.CreateCategoryInput
	if errs, err := bind.JSONString(r.FormValue("category"), &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid category JSON")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Create(r.Context(), in, filename, content)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, category)
}

// List handles GET /categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.List()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, categories)
}

// Get handles GET /admin/categories/{id}.
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.Get(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, category)
}

// Delete handles DELETE /{categoryId}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.categories.Delete(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}
