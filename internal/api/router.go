package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bistroboss/bistro-api/docs"
	"github.com/bistroboss/bistro-api/internal/api/handler"
	"github.com/bistroboss/bistro-api/internal/api/middleware"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers. Services are built
// once in main and shared.
type Deps struct {
	Log zerolog.Logger

	Issuer ports.TokenIssuer
	Authn  ports.Authenticator
	Authz  ports.Authorizer

	Users        ports.UserService
	Chat         ports.ChatService
	Reservations ports.ReservationService
	Catalog      ports.CatalogService
	Orders       ports.OrderService
	Stats        ports.StatsService

	Channel handler.ChannelServer
	Checks  map[string]handler.Check

	CORSOrigins []string

	// Registerer and Gatherer default to the process-wide Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/ws"
		},
	}))

	// --- Route guards ---
	auth := middleware.Auth(d.Authn, d.Log)
	authed := []echo.MiddlewareFunc{auth}
	admin := []echo.MiddlewareFunc{auth, middleware.RequireAdmin(d.Authz)}
	self := func(param string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{auth, middleware.SelfOnly(param)}
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Issuer, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	messageHandler := handler.NewMessageHandler(d.Chat)
	reservationHandler := handler.NewReservationHandler(d.Reservations)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	orderHandler := handler.NewOrderHandler(d.Orders)
	statsHandler := handler.NewStatsHandler(d.Stats)
	healthHandler := handler.NewHealthHandler(d.Checks)

	// --- Identity ---
	e.POST("/jwt", authHandler.IssueToken)
	e.GET("/user/admin/:email", authHandler.AdminStatus, self("email")...)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.GET("/users", userHandler.List, admin...)
	e.PATCH("/users/admin/:id", userHandler.Promote, admin...)
	e.DELETE("/users/:id", userHandler.Delete, admin...)

	// --- Support chat ---
	e.GET("/messages/:userEmail", messageHandler.History, self("userEmail")...)
	e.GET("/admin/messages/:userEmail", messageHandler.AdminHistory, admin...)
	if d.Channel != nil {
		channelHandler := handler.NewChannelHandler(d.Authn, d.Channel, d.Log)
		e.GET("/ws", channelHandler.Connect)
	}

	// --- Reservations ---
	e.POST("/reservation", reservationHandler.Create, authed...)
	e.GET("/reservation", reservationHandler.List, admin...)
	e.GET("/reservation/:email", reservationHandler.ListMine, self("email")...)
	e.PATCH("/reservation/:id", reservationHandler.UpdateStatus, admin...)
	e.DELETE("/reservation/:id", reservationHandler.Delete, authed...)

	// --- Menu, reviews, contact ---
	e.GET("/menu", catalogHandler.ListMenu)
	e.GET("/menu/:id", catalogHandler.GetMenuItem)
	e.POST("/menu", catalogHandler.CreateMenuItem, admin...)
	e.PATCH("/menu/:id", catalogHandler.UpdateMenuItem, admin...)
	e.DELETE("/menu/:id", catalogHandler.DeleteMenuItem, admin...)
	e.GET("/reviews", catalogHandler.ListReviews)
	e.GET("/reviews/:email", catalogHandler.ListMyReviews, self("email")...)
	e.POST("/reviews", catalogHandler.CreateReview, authed...)
	e.POST("/contact", catalogHandler.SubmitContact)

	// --- Carts and payments ---
	e.GET("/carts", orderHandler.ListCart, self("email")...)
	e.POST("/carts", orderHandler.AddToCart, authed...)
	e.DELETE("/carts/:id", orderHandler.RemoveFromCart, authed...)
	e.POST("/create-payment-intent", orderHandler.CreatePaymentIntent)
	e.POST("/payments", orderHandler.RecordPayment, authed...)
	e.GET("/payments", orderHandler.ListPayments, admin...)
	e.GET("/payments/:email", orderHandler.ListMyPayments, self("email")...)

	// --- Dashboard ---
	e.GET("/admin-stats", statsHandler.AdminStats, admin...)
	e.GET("/order-stats", statsHandler.OrderStats, admin...)

	// --- Ops (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
