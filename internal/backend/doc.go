// Package backend provides an HTTP client for the pasta backend API.
//
// # API Endpoints
//
//   - GET  /raw/{id}: raw paste text
//   - GET  /api/meta/{id}/{secret}: JSON metadata {id, secret?, expiry?, mime}
//   - POST /api/new/{id}/{secret}/{expiry}/{mime}: create or overwrite; the
//     request body is the raw paste text and the response is
//     {id, secret, expiry, mime}
//
// Empty path segments are meaningful: an empty id creates a new paste, an
// empty secret means none is held, and an empty expiry asks the backend for
// its default lifetime.
//
// # Results
//
// Reads return a tagged Result instead of a sentinel value, so callers can
// tell "no such paste" (OutcomeNotFound, a 404 or 410 answer) from "could not
// ask" (OutcomeTransient: transport failures, throttling and other error
// statuses, undecodable payloads):
//
//	res := client.GetMeta(ctx, id)
//	switch res.Outcome {
//	case backend.OutcomeOK:
//		use(res.Value)
//	case backend.OutcomeNotFound:
//		// paste expired or never existed
//	default:
//		log.Printf("meta fetch failed: %v", res.Err)
//	}
//
// Saves fail with *SaveError, which carries either the backend's validation
// messages or a single generic message. A successful save stores the
// returned ownership secret in the SecretStore given to NewClient.
//
// # Request Handling
//
// Every request carries a User-Agent and a fresh X-Request-ID, waits on the
// optional rate limiter, and is bounded by the client timeout. Nothing is
// retried.
package backend
