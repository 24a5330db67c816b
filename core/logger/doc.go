// Package logger builds log/slog loggers and provides attribute helpers.
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
//	log.InfoContext(ctx, "request completed",
//		logger.Method(r.Method),
//		logger.Route("/users/:id"),
//		logger.StatusCode(200),
//		logger.Latency(time.Since(start)),
//	)
//
// Configuration can also come from the environment through Config, loaded
// with the config package:
//
//	cfg := config.MustLoad[logger.Config]()
//	log := logger.New(logger.WithConfig(cfg))
//
// Attribute helpers return an empty slog.Attr for nil errors and empty
// strings, which slog omits from the output.
package logger
