package bootstrap

import (
	"context"
	"fmt"
	"time"

	"mockly-server/internal/config"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"

	authHandler "mockly-server/internal/auth/handler"
	authProcessor "mockly-server/internal/auth/processor"
	callsHandler "mockly-server/internal/calls/handler"
	"mockly-server/internal/clients/llm"
	"mockly-server/internal/clients/mail"
	"mockly-server/internal/clients/redis"
	feedbackHandler "mockly-server/internal/feedback/handler"
	feedbackProcessor "mockly-server/internal/feedback/processor"
	interviewsHandler "mockly-server/internal/interviews/handler"
	interviewsProcessor "mockly-server/internal/interviews/processor"
	"mockly-server/internal/notify"
	"mockly-server/internal/ratelimit"
	"mockly-server/internal/voiceagent"
	"mockly-server/internal/voiceagent/scripts"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   store.Store
	Redis   *redis.Client
	Metrics *observability.Metrics
	Logger  *observability.Logger

	// Handlers
	AuthHandler       authHandler.Handler
	InterviewsHandler interviewsHandler.Handler
	FeedbackHandler   feedbackHandler.Handler
	CallsHandler      callsHandler.Handler

	// Middleware
	GenerateRateLimiter *ratelimit.Service
	WebhookSecret       string
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:        logger,
		Metrics:       observability.NewMetrics(),
		WebhookSecret: cfg.VoiceAgent.WebhookSecret,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize Redis; a nil client disables rate limiting
	deps.Redis, err = redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	deps.GenerateRateLimiter = ratelimit.NewService(deps.Redis, "generate", cfg.Redis.GenerateLimitPerHour, time.Hour, logger)

	// Initialize clients
	model, err := llm.New(ctx, cfg.Services, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	var mailer notify.Mailer
	if cfg.Services.ResendAPIKey != "" && cfg.Services.DefaultEmailSender != "" {
		mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create resend client: %w", err)
		}
		mailer = mailClient
	} else {
		logger.Info(ctx, "Resend is not configured, feedback emails are disabled")
	}
	notifier := notify.New(mailer, cfg.Services.DefaultEmailSender, cfg.Services.WebAppURI, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(&deps.Store, cfg.Auth, logger)
	deps.AuthHandler = authHandler.New(authProc, cfg.Auth.SecureCookie, logger)

	// Initialize interviews processor and handler
	interviewProc := interviewsProcessor.New(&deps.Store, model, deps.Metrics, logger)
	deps.InterviewsHandler = interviewsHandler.New(interviewProc, logger)

	// Initialize feedback processor and handler
	feedbackProc := feedbackProcessor.New(&deps.Store, model, notifier, cfg.Services.FeedbackEnabled, deps.Metrics, logger)
	deps.FeedbackHandler = feedbackHandler.New(feedbackProc, logger)

	// Initialize the browser call socket; each connection dials its own platform client
	dialer := voiceagent.Dialer{
		URL:    cfg.VoiceAgent.URL,
		APIKey: cfg.VoiceAgent.APIKey,
		Logger: logger,
	}
	deps.CallsHandler = callsHandler.New(
		callsHandler.VoiceAgentDialer(dialer),
		scripts.Provider{
			PublicBaseURL: cfg.Services.PublicBaseURL,
			WebhookSecret: cfg.VoiceAgent.WebhookSecret,
		},
		feedbackProc,
		&interviewProc,
		cfg.Services.WebAppURI,
		deps.Metrics,
		logger,
	)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis client", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
