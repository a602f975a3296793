package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "projectease/docs" // This will be auto-generated
	"projectease/internal/adapter/http/handlers"
	"projectease/internal/adapter/http/middleware"
	"projectease/internal/config"
	"projectease/internal/domain/entities"
	"projectease/internal/infrastructure/scheduler"
	"projectease/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// Run wires the service from cfg and serves until SIGINT or SIGTERM.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	dispatcher := usecase.NewEventDispatcher(deps.notifier, deps.publisher, deps.users, log)
	requestUseCase := usecase.NewRequestUseCase(
		deps.requests,
		deps.projects,
		deps.locker,
		dispatcher,
		entities.TransitionPolicy{Strict: cfg.StrictTransitions},
		log,
	)
	paymentUseCase := usecase.NewPaymentUseCase(
		deps.requests,
		deps.locker,
		deps.gateway,
		dispatcher,
		deps.metrics,
		usecase.PaymentConfig{
			Currency:      cfg.PaymentCurrency,
			KeySecret:     cfg.PaymentKeySecret,
			WebhookSecret: cfg.PaymentWebhookSecret,
			AttemptTTL:    cfg.PaymentAttemptTTL,
		},
		log,
	)

	jobs := scheduler.NewScheduler(paymentUseCase, cfg.PaymentExpirySchedule, log.Named("scheduler"))
	if err := jobs.Start(); err != nil {
		return err
	}
	defer func() { <-jobs.Stop().Done() }()

	router := gin.New()
	setMiddlewares(router, log.Named("http"))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{})))

	auth := middleware.NewJWTAuth(cfg.JWTSecret, log.Named("auth"))
	requestHandler := handlers.NewRequestHandler(requestUseCase, log.Named("http"))
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, log.Named("http"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addRequestRoutes(v1, auth, requestHandler)
	addPaymentRoutes(v1, auth, paymentHandler)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to startup the application", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
}
