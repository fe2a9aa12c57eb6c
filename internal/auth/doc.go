// Package auth provides the authentication guard for the web application.
//
// Authentication is a signed, expiring bearer token carried in a cookie.
// The guard middleware verifies the token, resolves the user claims and
// stores them in the request context; invalid tokens clear the cookie.
// Admin-only routes additionally require the admin claim.
//
// Usage:
//
//	svc := auth.NewService(db, cfg.Auth.TokenSecret, tokenTTL)
//	app.Get("/url-groups/:id", svc.RequireAuth(), handlerFunc)
//	app.Delete("/url-groups/:id", svc.RequireAdmin(), handlerFunc)
//
// The guard is idempotent and side-effect free except for cookie clearing
// on invalid tokens.
package auth
