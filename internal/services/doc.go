// Package services implements the HTTP client for the remote Artanova catalog API.
//
// # Client
//
// [Client] wraps a base URL, an injected [net/http.Client], and a [TokenSource]
// supplying the current bearer credential. The token is read at call time for
// every authorized request, so a logout mid-flight is reflected in subsequent
// calls rather than a stale captured credential.
//
// Responses are decoded into typed values from the models package at this
// boundary; consumers never work with untyped JSON.
//
// # Endpoints
//
//	GET  /artworks?search=&sort=&order=&types=&origins=&limit=&cursor=
//	GET  /artworks/types
//	GET  /artworks/origins
//	POST /auth/login
//	POST /auth/join
//	GET  /collections                         (authorized)
//	POST /collections                         (authorized)
//	GET  /collections/:uuid
//	POST /collections/:uuid                   (authorized)
//	DELETE /collections/:uuid                 (authorized)
//	DELETE /collections/:uuid/artworks/:id    (authorized)
//
// # Error Handling
//
// Non-2xx responses become a [*StatusError] carrying the HTTP status code and
// the server-provided message when the body contains one. Transport failures
// are wrapped with [shared.ErrAPIRequest]; [StatusCode] maps any error to a
// displayable numeric code, defaulting to 500 for non-HTTP failures. A
// canceled request is not an error in the catalog's taxonomy; callers use
// [IsCanceled] to discard it silently.
package services
