package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/pkoka888/budget-control/api"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/config"
	"github.com/pkoka888/budget-control/internal/controllers/healthz"
	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/mail"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router sets up the router with all middlewares and routes.
func Router(cfg config.Config) (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if err := registerPrometheusMetrics(); err != nil {
		return nil, err
	}
	r.Use(MetricsMiddleware())

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	// Wire up the v1 controllers
	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	limiter := auth.NewLoginLimiter(5, 15*time.Minute)
	notifier := mail.NewSender(cfg.Email)
	v1.Configure(tokens, limiter, notifier)

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r, "debug/pprof")
	}

	docs.SwaggerInfo.Title = "Budget Control"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Budget Control, a personal budget tracking solution."

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthz.RegisterRoutes(r.Group("/healthz"))

	// Registration and login do not require authentication
	public := r.Group("/v1")
	{
		public.GET("", GetV1)
		public.OPTIONS("", OptionsV1)
	}
	v1.RegisterUserRoutes(public)

	// Everything else does
	authed := r.Group("/v1", auth.Middleware(tokens))
	{
		authed.DELETE("", v1.Cleanup)
	}

	v1.RegisterAccountRoutes(authed.Group("/accounts"))
	v1.RegisterCategoryRoutes(authed.Group("/categories"))
	v1.RegisterTransactionRoutes(authed.Group("/transactions"))
	v1.RegisterBudgetRoutes(authed.Group("/budgets"))
	v1.RegisterBudgetAlertRoutes(authed.Group("/budget-alerts"))
	v1.RegisterRecurringTransactionRoutes(authed.Group("/recurring"))
	v1.RegisterGoalRoutes(authed.Group("/goals"))
	v1.RegisterMatchRuleRoutes(authed.Group("/match-rules"))
	v1.RegisterReportRoutes(authed.Group("/reports"))
	v1.RegisterImportRoutes(authed.Group("/import"))
	v1.RegisterExportRoutes(authed.Group("/export"))

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/healthz"`      // Healthiness check endpoint
	Version string `json:"version" example:"https://example.com/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/metrics"`      // Prometheus metrics endpoint
	V1      string `json:"v1" example:"https://example.com/v1"`                // List endpoint for all v1 endpoints
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := requestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Register     string `json:"register" example:"https://example.com/v1/register"`          // URL of the registration endpoint
	Login        string `json:"login" example:"https://example.com/v1/login"`                // URL of the login endpoint
	Accounts     string `json:"accounts" example:"https://example.com/v1/accounts"`          // URL of account list endpoint
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`      // URL of category list endpoint
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"`  // URL of transaction list endpoint
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`            // URL of budget list endpoint
	BudgetAlerts string `json:"budgetAlerts" example:"https://example.com/v1/budget-alerts"` // URL of budget alert list endpoint
	Recurring    string `json:"recurring" example:"https://example.com/v1/recurring"`        // URL of recurring transaction list endpoint
	Goals        string `json:"goals" example:"https://example.com/v1/goals"`                // URL of goal list endpoint
	MatchRules   string `json:"matchRules" example:"https://example.com/v1/match-rules"`     // URL of match rule list endpoint
	Reports      string `json:"reports" example:"https://example.com/v1/reports"`            // URL of the report endpoints
	Import       string `json:"import" example:"https://example.com/v1/import"`              // URL of import endpoints
	Export       string `json:"export" example:"https://example.com/v1/export"`              // URL of export endpoints
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := requestHost(c) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Register:     url + "/register",
			Login:        url + "/login",
			Accounts:     url + "/accounts",
			Categories:   url + "/categories",
			Transactions: url + "/transactions",
			Budgets:      url + "/budgets",
			BudgetAlerts: url + "/budget-alerts",
			Recurring:    url + "/recurring",
			Goals:        url + "/goals",
			MatchRules:   url + "/match-rules",
			Reports:      url + "/reports",
			Import:       url + "/import",
			Export:       url + "/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// requestHost returns the scheme and host the request was made against.
func requestHost(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	return scheme + "://" + c.Request.Host
}
