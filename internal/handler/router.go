package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/handler/api"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Books    *api.BookHandler
	Checkout *api.CheckoutHandler
	Changes  *api.ChangesHandler
}

func NewHandlers(
	auth *api.AuthHandler,
	books *api.BookHandler,
	checkout *api.CheckoutHandler,
	changes *api.ChangesHandler,
) Handlers {
	return Handlers{Auth: auth, Books: books, Checkout: checkout, Changes: changes}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, handlers Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	librarianOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleLibrarian)}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		books := apiGroup.Group("/books")
		books.Use(authMiddleware.RequireAuth())
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Books.List},
				{Method: http.MethodGet, Path: "/:isbn", Handler: h.Books.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Books.Create, Mw: librarianOnly},
				{Method: http.MethodPut, Path: "/:isbn", Handler: h.Books.Update, Mw: librarianOnly},
				{Method: http.MethodDelete, Path: "/:isbn", Handler: h.Books.Delete, Mw: librarianOnly},
			})
		}

		checkouts := apiGroup.Group("/checkouts")
		checkouts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(checkouts, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Checkout.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Checkout.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Checkout.Get},
				{Method: http.MethodPut, Path: "/:id/return", Handler: h.Checkout.Return},
			})
		}

		changes := apiGroup.Group("/changes")
		changes.Use(authMiddleware.RequireAuth())
		{
			addRoutes(changes, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Changes.Stream},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
