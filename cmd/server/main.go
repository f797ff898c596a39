package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/excelglass/contactrelay/internal/contact"
	"github.com/excelglass/contactrelay/pkg/config"
	"github.com/excelglass/contactrelay/pkg/email"
	"github.com/excelglass/contactrelay/pkg/httpserver"
	"github.com/excelglass/contactrelay/pkg/logger"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	MailDir string `env:"DEV_MAIL_DIR" envDefault:"./mail-out"`
}

func main() {
	var (
		appCfg  appConfig
		httpCfg httpserver.Config
		mailCfg email.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&mailCfg)

	logOpt := logger.WithDevelopment("contactrelay")
	if appCfg.Env == "production" {
		logOpt = logger.WithProduction("contactrelay")
	}
	log := logger.New(logOpt)
	logger.SetAsDefault(log)

	sender := newSender(mailCfg, appCfg, log)

	handler := contact.NewRelayHandler(sender,
		contact.WithHandlerLogger(log.With(logger.Component("relay_handler"))),
	)

	ctx := context.Background()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, sender.Verify))
	// The handler owns method dispatch so non-POST requests get the
	// structured 405 body instead of chi's plain-text default.
	r.Handle("/api/contact", handler)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("Contact relay listening", slog.String("addr", httpCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("Contact relay stopped")
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.Error("Server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// requestLogger emits one structured record per handled request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "Request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// newSender picks the dispatch backend: real SMTP when credentials are
// present, otherwise the filesystem sender so local development never needs
// an app password.
func newSender(cfg email.Config, app appConfig, log *slog.Logger) email.Sender {
	if cfg.Configured() {
		log.Info("Using SMTP sender",
			slog.String("host", cfg.Host),
			slog.Int("port", cfg.Port),
		)
		return email.MustNewSMTPSender(cfg)
	}

	log.Warn("SMTP credentials missing, writing mail to disk",
		slog.String("dir", app.MailDir),
	)
	return email.NewDevSender(app.MailDir)
}
