package router

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "tailorshop/docs" // swagger docs
	"tailorshop/internal/auth"
	"tailorshop/internal/config"
	"tailorshop/internal/errors"
	"tailorshop/internal/handler"
	"tailorshop/internal/logger"
	"tailorshop/internal/metrics"
	"tailorshop/internal/model"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Booking *handler.BookingHandler
	Tailor  *handler.TailorHandler
	Admin   *handler.AdminHandler
	Service *handler.ServiceHandler
	Advice  *handler.AdviceHandler
	Seed    *handler.SeedHandler
}

// RevocationChecker reports whether an access token ID was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// Register wires routes and middleware. storageRoot, when set, is served
// under /storage for the local disk.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, revoked RevocationChecker, storageRoot string) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("10M"))
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if storageRoot != "" {
		e.Static("/storage", storageRoot)
	}

	jwtConfig := echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ContextKeyToken,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}
	requireAuth := echojwt.WithConfig(jwtConfig)

	optional := jwtConfig
	optional.Skipper = func(c echo.Context) bool {
		return c.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	optionalAuth := echojwt.WithConfig(optional)
	notRevoked := rejectRevoked(revoked)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout, optionalAuth)
	api.GET("/auth/verify", h.Auth.Verify)
	api.GET("/services", h.Service.List)
	api.POST("/advice", h.Advice.Ask)
	api.POST("/bookings", h.Booking.Create, optionalAuth, notRevoked)

	// Secured routes (require JWT authentication)
	secured := api.Group("", requireAuth, notRevoked)

	secured.POST("/auth/verify/resend", h.Auth.ResendVerification)
	secured.GET("/me", h.Auth.Me)
	secured.GET("/me/profile", h.User.GetProfile)
	secured.PUT("/me/profile", h.User.UpdateProfile)
	secured.PUT("/me/measurements", h.User.UpdateMeasurements)

	secured.GET("/bookings/mine", h.Booking.ListMine)
	secured.GET("/bookings/:id", h.Booking.Get)
	secured.GET("/bookings/:id/whatsapp", h.Booking.WhatsApp)
	secured.POST("/bookings/:id/images", h.Booking.UploadImage)

	tailor := secured.Group("/tailor", RequireRole(model.RoleTailor, model.RoleAdmin))
	tailor.GET("/bookings", h.Tailor.ListAssigned)
	tailor.GET("/actions", h.Tailor.Actions)
	tailor.GET("/measurement-fields", h.Tailor.MeasurementFields)
	tailor.PATCH("/bookings/:id/status", h.Tailor.UpdateStatus)
	tailor.PUT("/bookings/:id/measurements", h.Tailor.UpdateMeasurements)

	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/bookings", h.Admin.ListBookings)
	admin.PATCH("/bookings/:id/status", h.Admin.UpdateStatus)
	admin.PATCH("/bookings/:id/assign", h.Admin.Assign)
	admin.PUT("/bookings/:id/measurements", h.Admin.UpdateMeasurements)
	admin.PUT("/bookings/:id/cost", h.Admin.SetCost)
	admin.GET("/stats", h.Admin.Stats)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PATCH("/users/:id/role", h.Admin.UpdateRole)
	admin.GET("/tailors", h.Admin.Tailors)
	admin.GET("/tailors/:id/bookings", h.Admin.TailorBookings)
	admin.POST("/seed", h.Seed.Seed)

	catalog := secured.Group("/services", RequireRole(model.RoleAdmin))
	catalog.POST("", h.Service.Create)
	catalog.POST("/images", h.Service.UploadImage)
	catalog.PUT("/:id", h.Service.Update)
	catalog.DELETE("/:id", h.Service.Delete)
}

// RequireRole rejects callers whose token role is not in roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := handler.Claims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHORIZED",
				})
			}
			if !slices.Contains(roles, claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// rejectRevoked refuses access tokens blacklisted at logout.
func rejectRevoked(checker RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := handler.Claims(c); claims != nil && checker.IsRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "token has been revoked",
					Code:  "TOKEN_REVOKED",
				})
			}
			return next(c)
		}
	}
}

// requestLogger logs each request through slog and stores a logger tagged
// with the request id in the request context.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			l := slog.Default().With("request_id", id)
			c.SetRequest(c.Request().WithContext(logger.Inject(c.Request().Context(), l)))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "request", slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
