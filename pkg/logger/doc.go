// Package logger is a thin factory around log/slog with env-driven defaults
// and a handful of domain attribute helpers.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg, logger.WithAttr(slog.String("app", "hiredesk")))
//
// Library packages accept an optional *slog.Logger and fall back to
// logger.Discard() when none is provided, so SDK consumers opt into logging
// explicitly.
package logger
