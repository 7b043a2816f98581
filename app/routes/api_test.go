package routes

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/quodex/invizo/app/controllers"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/auth"
	"github.com/quodex/invizo/pkg/middleware"
	"github.com/quodex/invizo/pkg/razorpay"
	"github.com/quodex/invizo/pkg/router"
	"github.com/quodex/invizo/pkg/storage"
	"github.com/quodex/invizo/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullGateway struct{}

func (nullGateway) CreateOrder(context.Context, float64, string) (*razorpay.Order, error) {
	return &razorpay.Order{ID: "order_test"}, nil
}
func (nullGateway) KeyID() string { return "rzp_test" }

// newSurface stands up the full route table against an in-memory
// database with one staff and one admin account.
func newSurface(t *testing.T) (http.Handler, string, string) {
	t.Helper()

	db := testkit.NewDB(t,
		&models.User{}, &models.Category{}, &models.Item{},
		&models.Order{}, &models.OrderItem{})

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	disk := storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/storage")

	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)
	categorySvc := services.NewCategoryService(categoryRepo, itemRepo, disk)
	itemSvc := services.NewItemService(itemRepo, categoryRepo, disk)
	orderSvc := services.NewOrderService(orderRepo, itemRepo, nullGateway{}, "secret")

	ctrl := Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Users:    controllers.NewUserController(userSvc),
		Category: controllers.NewCategoryController(categorySvc),
		Item:     controllers.NewItemController(itemSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Payment:  controllers.NewPaymentController(orderSvc),
	}

	lookup := func(email string) (middleware.Identity, bool) {
		user, err := userRepo.FindByEmail(email)
		if err != nil {
			return middleware.Identity{}, false
		}
		return middleware.Identity{UserID: user.UserID, Email: user.Email, Role: user.Role}, true
	}

	seedUser(t, userRepo, "staff@example.com", models.RoleUser)
	seedUser(t, userRepo, "admin@example.com", models.RoleAdmin)

	r := router.New()
	Register(r, ctrl, lookup, disk)

	staffToken, err := auth.GenerateToken("staff@example.com", models.RoleUser)
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken("admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	return r.Handler(), staffToken, adminToken
}

func seedUser(t *testing.T, repo *repositories.UserRepository, email, role string) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(&models.User{
		UserID:   uuid.NewString(),
		Name:     "Test " + role,
		Email:    email,
		Password: hash,
		Role:     role,
	}))
}

func TestLoginIssuesToken(t *testing.T) {
	handler, _, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/login",
		map[string]string{"email": "admin@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, string(env.Data), `"token"`)
	assert.Contains(t, string(env.Data), `"ADMIN"`)
}

func TestLoginBadPassword(t *testing.T) {
	handler, _, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/login",
		map[string]string{"email": "admin@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffRoutesRequireToken(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodGet, "/categories", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no token")

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/categories", nil, "garbage.token.here")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "malformed token")

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/categories", nil, staffToken)
	assert.Equal(t, http.StatusOK, rec.Code, "staff token")
}

func TestAdminRoutesRejectStaff(t *testing.T) {
	handler, staffToken, adminToken := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodGet, "/admin/users", nil, staffToken)
	assert.Equal(t, http.StatusForbidden, rec.Code, "staff on admin route")

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "anonymous on admin route")

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/admin/users", nil, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code, "admin token")
}

func TestTokenForDeletedUserIsRejected(t *testing.T) {
	handler, _, adminToken := newSurface(t)

	token, err := auth.GenerateToken("ghost@example.com", models.RoleAdmin)
	require.NoError(t, err)

	rec := testkit.DoJSON(t, handler, http.MethodGet, "/categories", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token subject must resolve to a live account")

	// The live admin still gets through.
	rec = testkit.DoJSON(t, handler, http.MethodGet, "/categories", nil, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleComesFromDatabaseNotToken(t *testing.T) {
	handler, _, _ := newSurface(t)

	// A forged ADMIN claim on a staff account must not grant access:
	// the identity is re-loaded from the database on every request.
	forged, err := auth.GenerateToken("staff@example.com", models.RoleAdmin)
	require.NoError(t, err)

	rec := testkit.DoJSON(t, handler, http.MethodGet, "/admin/users", nil, forged)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckoutThroughRouter(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	payload := map[string]interface{}{
		"customerName":  "Asha Rao",
		"mobileNumber":  "9876543210",
		"subtotal":      230,
		"tax":           11.5,
		"grandTotal":    241.5,
		"paymentMethod": "CASH",
		"items": []map[string]interface{}{
			{"itemId": "item-1", "name": "Masala Dosa", "price": 90, "quantity": 2},
		},
	}

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/orders", payload, staffToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/orders/latest", nil, staffToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Masala Dosa")
}

func TestManagementPaths(t *testing.T) {
	handler, staffToken, adminToken := newSurface(t)

	// Category fetch is admin-only; deletes live on their documented
	// singular paths. 404 means routing reached the controller.
	rec := testkit.DoJSON(t, handler, http.MethodGet, "/admin/categories/missing", nil, staffToken)
	assert.Equal(t, http.StatusForbidden, rec.Code, "category fetch is admin-gated")

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/admin/categories/missing", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.DoJSON(t, handler, http.MethodDelete, "/admin/user/missing", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.DoJSON(t, handler, http.MethodDelete, "/admin/item/missing", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryDeleteAtRoot(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	// Deleting a category only needs a valid token, not the admin role.
	rec := testkit.DoJSON(t, handler, http.MethodDelete, "/missing-category", nil, staffToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.DoJSON(t, handler, http.MethodDelete, "/missing-category", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderLineValidation(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	payload := map[string]interface{}{
		"customerName":  "Asha Rao",
		"mobileNumber":  "9876543210",
		"subtotal":      90,
		"tax":           4.5,
		"grandTotal":    94.5,
		"paymentMethod": "CASH",
		"items": []map[string]interface{}{
			{"itemId": "item-1", "name": "Masala Dosa", "price": 90, "quantity": 0},
		},
	}

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/orders", payload, staffToken)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "items.0.quantity")
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	handler, _, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsLabelByRoutePattern(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodDelete, "/orders/ORDdeadbeef", nil, staffToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = testkit.DoJSON(t, handler, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/orders/{orderId}"`)
	assert.NotContains(t, rec.Body.String(), "ORDdeadbeef", "raw ids must not become label values")
}

func TestValidationErrors(t *testing.T) {
	handler, staffToken, _ := newSurface(t)

	rec := testkit.DoJSON(t, handler, http.MethodPost, "/orders",
		map[string]interface{}{"paymentMethod": "CASH"}, staffToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "customerName")
}
