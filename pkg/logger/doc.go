// Package logger is a small factory around log/slog with option-based
// configuration and attribute helpers shared across the pipeline.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("contact-relay"),
//	)
//	log.Error("send failed", logger.Error(err), logger.Component("mail_relay"))
//
// Development mode switches to text output at debug level:
//
//	log := logger.New(logger.WithDevelopment("contact-relay"))
//
// The factory returns a plain *slog.Logger; nothing in this package needs to
// be threaded through call sites beyond that.
package logger
