// Package middleware provides request middleware for waypoint applications.
//
// Every middleware is generic over the application state type and follows the
// same shape: a default constructor, a WithConfig constructor taking a config
// struct, and a Skip hook to bypass it for selected requests. Values a
// middleware discovers are stored in the request context and read back with a
// Get helper.
//
//	app := waypoint.New(state, waypoint.WithLogger[*State](log))
//	app.Use(
//		middleware.RequestID[*State](),
//		middleware.ClientIP[*State](),
//		middleware.Logging[*State](log),
//		middleware.CORS[*State](),
//		middleware.SecurityHeaders[*State](),
//		middleware.BodyLimitWithSize[*State](2*middleware.MB),
//		middleware.RateLimit[*State](middleware.RateLimitConfig{Limiter: limiter}),
//		middleware.Compress[*State](),
//	)
//
// Middleware run in registration order on the way in and in reverse order
// while the response renders, so headers added after next.Run still reach the
// client. The chain also runs for requests that match no route, which lets
// CORS answer preflight requests and lets Logging record 404s.
//
// # Available middleware
//
//   - RequestID: assigns or propagates X-Request-ID; GetRequestID, RequestIDExtractor
//   - ClientIP: resolves the client address from proxy headers; GetClientIP
//   - Logging: one structured record per request with status, size and duration
//   - CORS: preflight handling and response headers
//   - SecurityHeaders: X-Frame-Options, CSP, HSTS and friends
//   - BodyLimit: rejects oversized bodies with 413
//   - RateLimit: token bucket limiting backed by pkg/ratelimiter
//   - Compress: gzip response bodies
//   - BearerAuth: token authentication; GetPrincipal
package middleware
