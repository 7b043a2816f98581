// Package server assembles the application: configuration, database,
// cache, storage, the service graph and the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quodex/invizo/app/controllers"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/app/routes"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/config"
	"github.com/quodex/invizo/pkg/cache"
	"github.com/quodex/invizo/pkg/database"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/middleware"
	"github.com/quodex/invizo/pkg/razorpay"
	"github.com/quodex/invizo/pkg/router"
	"github.com/quodex/invizo/pkg/storage"
	"gorm.io/gorm"
)

// Start boots the application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if uri := config.MongoLogURI(); uri != "" {
		if _, err := logger.EnableMongoSink(uri, config.MongoLogDatabase(), config.MongoLogCollection()); err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		}
	}

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, continuing without it", "error", err)
	}

	disk := storage.Connect()
	r := BuildRouter(db, disk)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-quit:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// BuildRouter wires repositories, services, controllers and routes.
// Exposed so tests and the route:list command can stand up the full
// surface without listening.
func BuildRouter(db *gorm.DB, disk storage.Disk) *router.Router {
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	gateway := razorpay.New()

	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)
	categorySvc := services.NewCategoryService(categoryRepo, itemRepo, disk)
	itemSvc := services.NewItemService(itemRepo, categoryRepo, disk)
	orderSvc := services.NewOrderService(orderRepo, itemRepo, gateway, config.RazorpaySecret())

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Users:    controllers.NewUserController(userSvc),
		Category: controllers.NewCategoryController(categorySvc),
		Item:     controllers.NewItemController(itemSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Payment:  controllers.NewPaymentController(orderSvc),
	}

	// Every authenticated request re-loads the account so deleted users
	// and role changes take effect immediately.
	lookup := func(email string) (middleware.Identity, bool) {
		user, err := userRepo.FindByEmail(email)
		if err != nil {
			return middleware.Identity{}, false
		}
		return middleware.Identity{UserID: user.UserID, Email: user.Email, Role: user.Role}, true
	}

	r := router.New()
	routes.Register(r, ctrl, lookup, disk)
	return r
}
