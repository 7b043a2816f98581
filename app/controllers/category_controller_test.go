package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/storage"
	"github.com/quodex/invizo/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryController(t *testing.T) *CategoryController {
	t.Helper()
	db := testkit.NewDB(t, &models.Category{}, &models.Item{})
	disk := storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/storage")
	svc := services.NewCategoryService(
		repositories.NewCategoryRepository(db),
		repositories.NewItemRepository(db),
		disk,
	)
	return NewCategoryController(svc)
}

// multipartBody builds a request body with a JSON part and a file part.
func multipartBody(t *testing.T, jsonField, jsonValue, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField(jsonField, jsonValue))

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(file)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestCategoryCreateMultipart(t *testing.T) {
	ctrl := newCategoryController(t)

	body, contentType := multipartBody(t,
		"category", `{"name":"Beverages","description":"Drinks","bgColor":"#335577"}`,
		"drinks.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, string(env.Data), "Beverages")
	assert.Contains(t, string(env.Data), "/storage/uploads/")
}

func TestCategoryCreateMissingFile(t *testing.T) {
	ctrl := newCategoryController(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("category", `{"name":"Beverages"}`))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryCreateInvalidJSONPart(t *testing.T) {
	ctrl := newCategoryController(t)

	body, contentType := multipartBody(t, "category", `{"name":`, "x.png", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryCreateValidationFailure(t *testing.T) {
	ctrl := newCategoryController(t)

	body, contentType := multipartBody(t, "category", `{"name":""}`, "x.png", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	ctrl.Create(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "name")
}

func TestCategoryGetNotFound(t *testing.T) {
	ctrl := newCategoryController(t)

	req := httptest.NewRequest(http.MethodGet, "/categories/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	ctrl.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
