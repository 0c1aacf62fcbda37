package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/volunteerhub/volunteerhub-api/internal/api/handler"
	"github.com/volunteerhub/volunteerhub-api/internal/api/middleware"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
	"github.com/volunteerhub/volunteerhub-api/internal/core/service"
	mongorepo "github.com/volunteerhub/volunteerhub-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/volunteerhub/volunteerhub-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the pieces the router cannot build itself.
type RouterConfig struct {
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	Notifier  ports.Notifier
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("volunteerhub"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	eventRepo := mongorepo.NewEventRepository(db)
	registrationRepo := mongorepo.NewRegistrationRepository(db)
	channelRepo := mongorepo.NewChannelRepository(db)
	postRepo := mongorepo.NewPostRepository(db)
	notificationRepo := mongorepo.NewNotificationRepository(db)
	denylist := redisrepo.NewDenylist(rdb)

	// --- Services ---
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	resolver := service.NewPermissionResolver(roleRepo, cfg.Log)
	authService := service.NewAuthService(userRepo, codec, denylist, cfg.Log)
	eventService := service.NewEventService(eventRepo, registrationRepo, channelRepo, postRepo, cfg.Notifier, cfg.Log)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, cfg.Notifier, cfg.Log)
	roleService := service.NewRoleService(roleRepo, cfg.Log)
	notificationService := service.NewNotificationService(notificationRepo, cfg.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	roleHandler := handler.NewRoleHandler(roleService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Every request passes the credential gate; anonymous requests pass
	// through and RequireAuthority decides per route.
	e.Use(middleware.Auth(codec, denylist, resolver, cfg.Log))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/introspect", authHandler.Introspect)

	// --- Event routes ---
	events := e.Group("/v1/events")
	events.GET("", eventHandler.List)
	events.GET("/mine", eventHandler.ListMine, middleware.RequireAuthority(domain.PermCreateEvent))
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, middleware.RequireAuthority(domain.PermCreateEvent))
	events.PUT("/:id", eventHandler.Update, middleware.RequireAuthority(domain.PermUpdateEvent))
	events.DELETE("/:id", eventHandler.Delete, middleware.RequireAuthority(domain.PermDeleteEvent))
	events.POST("/:id/approval", eventHandler.Approve, middleware.RequireAuthority(domain.PermApproveEvent))
	events.GET("/:id/registrations", registrationHandler.ListByEvent, middleware.RequireAuthority(domain.PermReadRegistration))

	// --- Registration routes ---
	registrations := e.Group("/v1/registrations")
	registrations.POST("", registrationHandler.Create, middleware.RequireAuthority(domain.PermCreateRegistration))
	registrations.GET("/mine", registrationHandler.ListMine, middleware.RequireAuthority(domain.PermReadRegistration))
	registrations.GET("/:id", registrationHandler.Get, middleware.RequireAuthority(domain.PermReadRegistration))
	registrations.PATCH("/:id", registrationHandler.UpdateStatus, middleware.RequireAuthority(domain.PermUpdateRegistration))
	// Delete stays open to any authenticated caller; ownership is decided
	// in the service so volunteers can withdraw their own registration.
	registrations.DELETE("/:id", registrationHandler.Delete, middleware.RequireAuthenticated())

	// --- Role administration ---
	roles := e.Group("/v1/roles")
	roles.POST("", roleHandler.Create, middleware.RequireAuthority(domain.PermCreateRole))
	roles.GET("", roleHandler.List, middleware.RequireAuthority(domain.PermListRoles))
	roles.PATCH("/:name/permissions", roleHandler.Grant, middleware.RequireAuthority(domain.PermUpdatePermission))
	roles.DELETE("/:name", roleHandler.Delete, middleware.RequireAuthority(domain.PermDeleteRole))

	// --- Notification routes ---
	notifications := e.Group("/v1/notifications", middleware.RequireAuthenticated())
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread", notificationHandler.ListUnread)
	notifications.GET("/unread/count", notificationHandler.UnreadCount)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
