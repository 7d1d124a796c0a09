package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendtracker/internal/adapter/http"
	appmw "lendtracker/internal/adapter/middleware"
	"lendtracker/internal/adapter/repository/mysql"
	"lendtracker/internal/config"
	"lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/payment"
	"lendtracker/internal/domain/user"
	"lendtracker/internal/infrastructure/cache"
	"lendtracker/internal/infrastructure/db"
	"lendtracker/internal/service/notifier"
	adminUC "lendtracker/internal/usecase/admin"
	authUC "lendtracker/internal/usecase/auth"
	dashboardUC "lendtracker/internal/usecase/dashboard"
	loanUC "lendtracker/internal/usecase/loan"
	paymentUC "lendtracker/internal/usecase/payment"
	"lendtracker/pkg/metrics"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&user.User{}, &user.ResetToken{}, &loan.Loan{}, &payment.Payment{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}

	collector := metrics.NewCollector()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	loanRepo := mysql.NewLoanRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	resetRepo := mysql.NewResetTokenRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	sender := notifier.LogSender{Logger: logger}
	notif := notifier.New(userRepo, sender,
		cfg.NotifyWorkers, cfg.NotifyQueueSize, collector, logger)
	defer notif.Close()

	authSvc := authUC.NewService(userRepo, resetRepo, sender,
		[]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLMins)*time.Minute)
	loans := loanUC.NewUsecase(loanRepo, tx, notif, collector)
	recorder := paymentUC.NewRecorder(loanRepo, paymentRepo, tx, notif, collector)
	aggregator := dashboardUC.NewAggregator(loanRepo)
	adminSvc := adminUC.NewService(userRepo, loanRepo)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authSvc)
	adminH := httpadp.NewAdminHandler(adminSvc)
	loanH := httpadp.NewLoanHandler(loans)
	payH := httpadp.NewPaymentHandler(recorder)
	dashH := httpadp.NewDashboardHandler(aggregator)
	calcH := httpadp.NewCalculatorHandler()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// public
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))
	e.POST("/api/auth/register", authH.Register)
	e.POST("/api/auth/login", authH.Login)
	e.POST("/api/auth/send-verification-otp", authH.SendVerificationOTP)
	e.POST("/api/auth/verify-email", authH.VerifyEmail)
	e.POST("/api/auth/forgot-password", authH.ForgotPassword)
	e.GET("/api/auth/reset-password/validate", authH.ValidateResetToken)
	e.POST("/api/auth/reset-password", authH.ResetPassword)
	e.GET("/api/loans/calculate-interest", calcH.CalculateInterest)

	// owner-scoped; idempotency guards the mutating routes
	api := e.Group("/api/loans",
		httpadp.AuthMiddleware(authSvc),
		appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSec)*time.Second),
	)
	api.POST("", loanH.CreateLoan)
	api.GET("", loanH.ListLoans)
	api.GET("/search", loanH.SearchLoans)
	api.GET("/filter-counts", loanH.FilterCounts)
	api.GET("/active", loanH.ListActiveLoans)
	api.GET("/dashboard", dashH.Dashboard)
	api.GET("/payment-history/all", payH.AllPaymentHistory)
	api.GET("/:loan_id", loanH.GetLoan)
	api.PUT("/:loan_id", loanH.UpdateLoan)
	api.DELETE("/:loan_id", loanH.DeleteLoan)
	api.POST("/:loan_id/receive-interest", payH.ReceiveInterest)
	api.POST("/:loan_id/receive-principal", payH.ReceivePrincipal)
	api.GET("/:loan_id/payment-history", payH.PaymentHistory)

	// admin-only
	adm := e.Group("/api/admin",
		httpadp.AuthMiddleware(authSvc),
		httpadp.RequireAdmin(userRepo),
	)
	adm.GET("/users", adminH.ListUsers)
	adm.GET("/stats", adminH.SystemStats)
	adm.POST("/users/:user_id/toggle-active", adminH.ToggleUserActive)
	adm.POST("/users/:user_id/grant-admin", adminH.GrantAdmin)
	adm.POST("/users/:user_id/revoke-admin", adminH.RevokeAdmin)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
