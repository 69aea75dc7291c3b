package api

import (
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/staynest/booking-api/internal/api/handler"
	"github.com/staynest/booking-api/internal/api/middleware"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"

	_ "github.com/staynest/booking-api/docs"
)

// Deps are the collaborators the HTTP layer needs. Limiter and Reporter may be nil.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Bookings ports.BookingService
	Tokens   ports.TokenCodec
	Limiter  ports.LoginLimiter
	Reporter ports.ErrorReporter
	Checks   map[string]handler.Pinger
	Log      zerolog.Logger
	// TrustedProxies are CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.IPExtractor = ipExtractor(d.TrustedProxies)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Reporter)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	// HTTP metrics live in a per-router registry; custom metrics stay on the default one.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "booking",
		Registerer: httpMetrics,
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	healthHandler := handler.NewHealthHandler(d.Checks, d.Log)
	gate := middleware.Auth(d.Tokens)

	// --- Public ---
	e.GET("/", healthHandler.Root)
	e.POST("/login", authHandler.Login, middleware.LoginThrottle(d.Limiter, d.Log))
	e.POST("/users", authHandler.Register)

	// --- Gated ---
	e.GET("/users", userHandler.List, gate, middleware.RBAC(domain.Roles()...))

	bookings := e.Group("/bookings", gate)
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update)
	bookings.DELETE("/:id", bookingHandler.Delete)

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor uses the TCP peer address unless the peer is a trusted proxy.
// Client-supplied forwarding headers are never trusted otherwise.
func ipExtractor(trusted []string) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			opts = append(opts, echo.TrustIPRange(ipNet))
		}
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
