// Package server runs an http.Handler, typically a waypoint Service, with
// production timeouts and graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, app.Service()))
//	return g.Wait()
//
// Start binds the listener before serving, so Ready and Addr can be used to
// discover a random port chosen with ":0". When the context is cancelled the
// server stops accepting connections and waits up to the shutdown timeout
// for in-flight requests. A clean shutdown is not an error.
//
// Config carries env tags for core/config; TLS is enabled when both
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
package server
