package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "loanmarket-api/internal/adapter/http"
	"loanmarket-api/internal/adapter/identity"
	appmw "loanmarket-api/internal/adapter/middleware"
	"loanmarket-api/internal/adapter/payment"
	"loanmarket-api/internal/adapter/repository/mysql"
	"loanmarket-api/internal/config"
	userDomain "loanmarket-api/internal/domain/user"
	"loanmarket-api/internal/infrastructure/cache"
	"loanmarket-api/internal/infrastructure/db"
	"loanmarket-api/internal/usecase/applications"
	"loanmarket-api/internal/usecase/catalog"
	"loanmarket-api/internal/usecase/users"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logrus.WithError(err).Fatal("mysql connection failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logrus.WithError(err).Fatal("redis connection failed")
	}

	// repositories + unit of work
	userRepo := mysql.NewUserRepository(gormDB)
	productRepo := mysql.NewProductRepository(gormDB)
	appRepo := mysql.NewApplicationRepository(gormDB)
	uow := mysql.NewGormUoW(gormDB)

	// external boundaries
	verifier := identity.NewJWTVerifier(cfg.JWTSecret)
	provider := payment.NewStripeProvider(cfg.StripeSecretKey)

	// usecases
	userUC := users.NewUsecase(userRepo)
	catalogUC := catalog.NewUsecase(productRepo)
	appUC := applications.NewUsecase(appRepo, uow, provider, applications.CheckoutConfig{
		FeeCents:   cfg.ApplicationFeeCents,
		Currency:   cfg.CheckoutCurrency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	})

	// handlers
	cacheTTL := time.Duration(cfg.CacheTTLSecs) * time.Second
	base := httpadp.NewHandler(gormDB)
	userH := httpadp.NewUserHandler(userUC)
	catalogH := httpadp.NewCatalogHandler(catalogUC, rdb, cacheTTL)
	appH := httpadp.NewApplicationHandler(appUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, appmw.HeaderIdempotencyKey},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
	}))

	auth := appmw.BearerAuth(verifier)
	managerOnly := appmw.RequireRole(userRepo, userDomain.RoleManager)
	adminOnly := appmw.RequireRole(userRepo, userDomain.RoleAdmin)
	idem := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// public
	e.GET("/health", base.Health)
	e.POST("/users", userH.UpsertUser)
	e.GET("/users/role/:email", userH.GetRole)
	e.GET("/loans/home", catalogH.Home)
	e.GET("/all-loans", catalogH.ListLoans)
	e.GET("/loan/:id", catalogH.GetLoan)

	// authenticated borrowers
	authed := e.Group("", auth)
	authed.POST("/loan-applications", appH.Submit, idem)
	authed.GET("/my-loans", appH.MyLoans)
	authed.GET("/loan-application/:id", appH.GetApplication)
	authed.PATCH("/loan-applications/cancel/:id", appH.Cancel)
	authed.POST("/create-checkout-session", appH.CreateCheckoutSession, idem)
	authed.POST("/loan-applications/verify-payment", appH.VerifyPayment, idem)

	// manager
	manager := e.Group("", auth, managerOnly)
	manager.POST("/loans", catalogH.CreateLoan)
	manager.GET("/loans", catalogH.ListLoans)
	manager.PATCH("/loans/:id", catalogH.UpdateLoan)
	manager.DELETE("/loans/:id", catalogH.DeleteLoan)
	manager.GET("/manager/loan-applications", appH.ListApplications)
	manager.PATCH("/loan-applications/manager/:id/approve", appH.Approve)
	manager.PATCH("/loan-applications/manager/:id/reject", appH.Reject)

	// admin
	admin := e.Group("/admin", auth, adminOnly)
	admin.GET("/loans", catalogH.ListLoans)
	admin.GET("/loans/:id", catalogH.GetLoan)
	admin.PUT("/loans/:id", catalogH.ReplaceLoan)
	admin.DELETE("/loans/:id", catalogH.DeleteLoan)
	admin.PATCH("/loans/:id/show-on-home", catalogH.SetShowOnHome)
	admin.GET("/users", userH.ListUsers)
	admin.GET("/users-management", userH.ListUsers)
	admin.PATCH("/users/:id/role", userH.SetUserRole)
	admin.PATCH("/users/:id/suspend", userH.SuspendUser)
	admin.PATCH("/users/:id/approve", userH.ApproveUser)
	admin.GET("/loan-applications", appH.ListApplications)
	admin.PATCH("/loan-applications/:id/status", appH.SetStatus)

	go func() {
		addr := ":" + cfg.AppPort
		logrus.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	_ = rdb.Close()
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
