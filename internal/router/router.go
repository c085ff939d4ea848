package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/config"
	"github.com/billyribeiro-ux/cognition-os/internal/handlers"
	"github.com/billyribeiro-ux/cognition-os/internal/srs"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
}

func Setup(log *zap.Logger, seeds *srs.SeedFile) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 365,
	})
	router.Use(sessions.Sessions("cogsession", store))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers
	clock := timeutil.SystemClock{}
	protocolHandler := handlers.NewProtocolHandler(log)
	dayHandler := handlers.NewDayHandler(log, clock)
	streakHandler := handlers.NewStreakHandler(log, clock)
	srsHandler := handlers.NewSRSHandler(log, clock, seeds)
	drillHandler := handlers.NewDrillHandler(log, clock)
	progressHandler := handlers.NewProgressHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 20,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(DeviceIdentity(log))
	{
		protocolRoutes := api.Group("/protocol")
		{
			protocolRoutes.POST("/generate", limiter, protocolHandler.Generate)
			protocolRoutes.GET("/levels", protocolHandler.Levels)
		}

		dayRoutes := api.Group("/day")
		{
			dayRoutes.POST("/log", limiter, dayHandler.SubmitLog)
			dayRoutes.GET("/logs", dayHandler.Logs)
		}

		streakRoutes := api.Group("/streak")
		{
			streakRoutes.GET("", streakHandler.Get)
			streakRoutes.POST("/check", limiter, streakHandler.Check)
			streakRoutes.POST("/level-up", limiter, streakHandler.LevelUp)
		}

		srsRoutes := api.Group("/srs")
		{
			srsRoutes.GET("/decks", srsHandler.Decks)
			srsRoutes.GET("/due", srsHandler.Due)
			srsRoutes.POST("/cards", limiter, srsHandler.CreateCard)
			srsRoutes.POST("/review", limiter, srsHandler.Review)
			srsRoutes.GET("/cards/:id/projections", srsHandler.Projections)
			srsRoutes.DELETE("/cards/:id", limiter, srsHandler.DeleteCard)
		}

		drillRoutes := api.Group("/drill")
		{
			drillRoutes.POST("/start", limiter, drillHandler.Start)
			drillRoutes.POST("/press", drillHandler.Press)
			drillRoutes.GET("/state", drillHandler.State)
			drillRoutes.POST("/reset", limiter, drillHandler.Reset)
			drillRoutes.POST("/score", limiter, drillHandler.SubmitScore)
			drillRoutes.GET("/scores", drillHandler.Scores)
		}

		progressRoutes := api.Group("/progress")
		{
			progressRoutes.GET("/metrics", progressHandler.Metrics)
			progressRoutes.GET("/chart", progressHandler.Chart)
			progressRoutes.GET("/completion", progressHandler.CompletionChart)
		}
	}

	return router
}
