package api

import (
	authHandler "mockly-server/internal/auth/handler"
	callsHandler "mockly-server/internal/calls/handler"
	feedbackHandler "mockly-server/internal/feedback/handler"
	interviewsHandler "mockly-server/internal/interviews/handler"
	"mockly-server/internal/ratelimit"
	"mockly-server/internal/voiceagent/scripts"
	"net/http"

	"github.com/gin-gonic/gin"
)

type API struct {
	router            *gin.RouterGroup
	authHandler       authHandler.Handler
	interviewsHandler interviewsHandler.Handler
	feedbackHandler   feedbackHandler.Handler
	callsHandler      callsHandler.Handler
	generateLimiter   *ratelimit.Service
	webhookSecret     string
	metricsHandler    http.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	interviewsHandler interviewsHandler.Handler,
	feedbackHandler feedbackHandler.Handler,
	callsHandler callsHandler.Handler,
	generateLimiter *ratelimit.Service,
	webhookSecret string,
	metricsHandler http.Handler,
) API {
	return API{
		router:            router,
		authHandler:       authHandler,
		interviewsHandler: interviewsHandler,
		feedbackHandler:   feedbackHandler,
		callsHandler:      callsHandler,
		generateLimiter:   generateLimiter,
		webhookSecret:     webhookSecret,
		metricsHandler:    metricsHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	if a.metricsHandler != nil {
		a.router.GET("/metrics", gin.WrapH(a.metricsHandler))
	}

	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/signup", a.authHandler.HandleSignup)
		authGroup.POST("/signin", a.authHandler.HandleSignin)
		authGroup.POST("/signout", a.authHandler.HandleSignout)
		authGroup.GET("/status", a.authHandler.HandleAuthStatus)
	}

	// Called by the voice-agent platform, not the browser
	apiGroup.POST("/vapi/generate",
		authHandler.RequireSharedSecret(scripts.WebhookSecretHeader, a.webhookSecret),
		a.generateLimiter.Middleware(ratelimit.JSONFieldKey("userid")),
		a.interviewsHandler.HandleGenerateInterview,
	)

	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleSessionMiddleware)
	{
		protectedGroup.GET("/user", a.authHandler.HandleGetCurrentUser)

		protectedGroup.GET("/interviews", a.interviewsHandler.HandleListMyInterviews)
		protectedGroup.GET("/interviews/latest", a.interviewsHandler.HandleListLatestInterviews)
		protectedGroup.GET("/interviews/:id", a.interviewsHandler.HandleGetInterview)
		protectedGroup.GET("/interviews/:id/feedback", a.feedbackHandler.HandleGetFeedback)

		protectedGroup.GET("/calls/ws", a.callsHandler.HandleCall)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
