package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/auth"
	md "github.com/asgoh05/geuk-small-library/pkg/middleware"
	_ "github.com/asgoh05/geuk-small-library/swagger"
)

const identityKey = "identity"

type Handler struct {
	librarySvc    LibraryService
	log           *zap.Logger
	noticeTimeout time.Duration
}

type Option func(*Handler)

// WithNoticeTimeout lets a notice batch response be written up to d after
// the request starts, past the server-wide write timeout.
func WithNoticeTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.noticeTimeout = d
	}
}

func New(librarySvc LibraryService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		librarySvc: librarySvc,
		log:        log.Named("handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter(authCfg auth.Config, validator echo.Validator) *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validator
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.Authentication(authCfg),
	)
	api.POST("/users/register", h.Register)

	api = api.Group("", h.Identify)
	api.GET("/me", h.Me)
	api.GET("/me/profile", h.Profile)
	api.PUT("/me/profile", h.UpdateProfile)
	api.GET("/me/loans", h.MyLoans)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:manageId", h.GetBook)
	api.POST("/books/:manageId/rent", h.Rent)
	api.POST("/books/:manageId/extend", h.Extend)
	api.POST("/books/:manageId/return", h.Return)

	admin := api.Group("/admin", h.RequireAdmin)
	admin.POST("/books", h.CreateBook)
	admin.PUT("/books/:manageId", h.UpdateBook)
	admin.DELETE("/books/:manageId", h.DeleteBook)
	admin.POST("/books/bulk", h.InsertBooks)
	admin.PUT("/books/bulk", h.ReplaceBooks)
	admin.POST("/books/bulk-delete", h.DeleteBooks)
	admin.POST("/books/:manageId/reset", h.ResetRental)
	admin.POST("/rentals/reset", h.ResetRentals)

	admin.POST("/import/plan", h.PlanImport)
	admin.POST("/import", h.ImportBooks)
	admin.GET("/export", h.ExportBooks)

	admin.GET("/overdue", h.CheckOverdue)
	admin.POST("/overdue/notices", h.SendOverdueNotices)
	admin.POST("/notices/test", h.SendTestEmail)
	admin.GET("/stats", h.Stats)

	admin.GET("/users", h.ListUsers)
	admin.POST("/users/actions", h.UserAction)
	admin.GET("/migration", h.PreviewRentalMigration)
	admin.POST("/migration", h.ApplyRentalMigration)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Identify resolves the authenticated principal into a library identity.
func (h *Handler) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		p, err := auth.GetPrincipal(ctx)
		if err != nil {
			return httpError(errs.ErrUnauthenticated)
		}
		who, err := h.librarySvc.Identify(ctx, p)
		if err != nil {
			h.log.Error("Identify", zap.String("email", p.Email), zap.Error(err))
			return httpError(err)
		}
		c.Set(identityKey, who)
		return next(c)
	}
}

func (h *Handler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		who, err := identity(c)
		if err != nil {
			return httpError(err)
		}
		if !who.IsAdmin {
			return httpError(errs.ErrAdminRequired)
		}
		return next(c)
	}
}

func identity(c echo.Context) (model.Identity, error) {
	who, ok := c.Get(identityKey).(model.Identity)
	if !ok {
		return model.Identity{}, errs.ErrUnauthenticated
	}
	return who, nil
}

func (h *Handler) Me(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, who)
}
