// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable timeouts, lifecycle hooks, and health-check
// handlers.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then shuts the server down with a configurable deadline.
// Construction goes through New with functional options, or NewFromConfig
// with an env-tagged Config struct. Startup and shutdown errors are wrapped
// with the ErrStart and ErrShutdown sentinels for errors.Is checks.
//
// # Usage
//
//	cfg := httpserver.Config{}
//	config.MustLoad(&cfg)
//
//	r := chi.NewRouter()
//	r.Handle("/api/contact", relayHandler)
//	r.Get("/ready", httpserver.HealthCheckHandler(log, smtpVerify))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
package httpserver
