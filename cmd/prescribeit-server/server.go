package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/config"
	"github.com/ehr/prescribeit/internal/domain/conversation"
	"github.com/ehr/prescribeit/internal/domain/dispense"
	"github.com/ehr/prescribeit/internal/domain/erx"
	"github.com/ehr/prescribeit/internal/domain/externalpatient"
	"github.com/ehr/prescribeit/internal/domain/materials"
	"github.com/ehr/prescribeit/internal/domain/prescription"
	"github.com/ehr/prescribeit/internal/domain/renewal"
	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/platform/auth"
	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/internal/platform/middleware"
	"github.com/ehr/prescribeit/pkg/validate"
)

const version = "0.1.0"

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e, err := newServer(cfg, logger, pool)
	if err != nil {
		return err
	}

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("version", version).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer builds the echo instance with every route registered. The pool
// is only used when requests arrive.
func newServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = errorHandler(e)

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID, db.ClinicHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
	e.GET("/health/db", db.PoolHealthHandler(pool))

	authMW, err := authMiddleware(cfg)
	if err != nil {
		return nil, err
	}
	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond, rl.BurstSize = cfg.RateLimitRPS, cfg.RateLimitBurst

	api := []echo.MiddlewareFunc{
		authMW,
		middleware.RateLimit(rl),
		db.ClinicMiddleware(pool, cfg.DefaultClinic),
	}
	materialsGroup := e.Group("/v2/materials", api...)
	prescriptionsGroup := e.Group("/v1/prescriptions", api...)
	portal := e.Group("/v1/provider-portal", api...)

	materials.NewHandler(materials.NewAppointmentMaterialsManagerPG(pool)).RegisterRoutes(materialsGroup)

	prescriptions := prescription.NewService(prescription.NewPrescriptionManagerPG(pool))
	prescription.NewHandler(prescriptions).RegisterRoutes(prescriptionsGroup)

	patients := externalpatient.NewService(externalpatient.NewExternalPatientManagerPG(pool))
	externalpatient.NewHandler(patients).RegisterRoutes(portal)

	conversations := conversation.NewService(
		conversation.NewContactManagerPG(pool),
		conversation.NewConversationManagerPG(pool),
		prescriptions,
		patients,
	)
	conversation.NewHandler(conversations).RegisterRoutes(portal)

	dispense.NewHandler(dispense.NewService(dispense.NewDispenseNotificationManagerPG(pool))).RegisterRoutes(portal)

	erxSvc := erx.NewService(
		erx.NewEprescribeJobManagerPG(pool),
		erx.NewCancelRequestManagerPG(pool),
		erx.NewOrderStatusManagerPG(pool),
	)
	erx.NewHandler(erxSvc).RegisterRoutes(portal)

	renewal.NewHandler(renewal.NewService(renewal.NewRenewalManagerPG(pool))).RegisterRoutes(portal)

	return e, nil
}

// authMiddleware verifies bearer tokens. In development, requests without
// a token run as an admin of the default clinic.
func authMiddleware(cfg *config.Config) (echo.MiddlewareFunc, error) {
	key, err := resolveSigningKey(cfg.AuthSigningKey)
	if err != nil {
		return nil, err
	}
	var jwtMW echo.MiddlewareFunc
	if key != nil || cfg.AuthIssuer != "" || cfg.AuthJWKSURL != "" {
		jwtMW = auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			JWKSURL:    cfg.AuthJWKSURL,
			SigningKey: key,
			Skipper:    auth.AuthSkipper,
		})
	}
	if cfg.IsDev() {
		return auth.DevAuthMiddleware(cfg.DefaultClinic, jwtMW), nil
	}
	if jwtMW == nil {
		return nil, errors.New("no token verification configured")
	}
	return jwtMW, nil
}

// resolveSigningKey decodes the hex-encoded AUTH_SIGNING_KEY. An empty
// value yields a nil key.
func resolveSigningKey(envValue string) ([]byte, error) {
	if envValue == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(envValue)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SIGNING_KEY hex value: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("AUTH_SIGNING_KEY must be at least 32 bytes, got %d", len(key))
	}
	return key, nil
}

// errorHandler logs server errors before echo writes the response.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if apperr.Status(err) >= http.StatusInternalServerError {
			zerolog.Ctx(c.Request().Context()).Error().Err(err).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
