package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// ItemController serves the item catalog endpoints. Create and delete
// are admin-only at the routing layer.
type ItemController struct {
	items *services.ItemService
}

func NewItemController(items *services.ItemService) *ItemController {
	return &ItemController{items: items}
}

// Create handles POST /admin/items. The request is multipart with a JSON
// part named "item" and the image under "file".
func (c *ItemController) Create(w http.ResponseWriter, r *http.Request) {
	filename, content, err := readUpload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var in services.CreateItemInput
	if errs, err := bind.JSONString(r.FormValue("item"), &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid item JSON")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.items.Create(r.Context(), in, filename, content)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, item)
}

// List handles GET /items.
func (c *ItemController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.items.List()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

// Get handles GET /items/{itemId}.
func (c *ItemController) Get(w http.ResponseWriter, r *http.Request) {
	item, err := c.items.Get(chi.URLParam(r, "itemId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, item)
}

// Delete handles DELETE /admin/item/{itemId}.
func (c *ItemController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.items.Delete(r.Context(), chi.URLParam(r, "itemId")); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}
