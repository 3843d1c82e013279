// Package server implements the short-lived local HTTP server that completes
// the Spotify login flow.
//
// When the user runs the auth command, a server starts on the configured host
// and port, the browser opens Spotify's consent screen, and Spotify redirects
// back to [CallbackPath]. The [CallbackHandler] checks the state token,
// exchanges the authorization code for tokens, and hands the outcome to the
// CLI over a channel. The server then shuts down.
//
// Routing goes through [LoginRouter], an [http.ServeMux] wrapper with method
// filtering and a [Middleware] stack. The handler accepts only the first
// callback so a replayed redirect cannot restart the exchange.
package server
