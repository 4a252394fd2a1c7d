/* Copyright 2025 Amity Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package middleware provides the handler wrappers shared by every route
package middleware

import (
	"net/http"
	"strings"

	"github.com/amity/amity/pkg/server/log"
	"github.com/amity/amity/pkg/server/session"
	"github.com/amity/amity/pkg/store"
)

// Deps carries what the middleware chain needs to resolve a request
type Deps struct {
	Sessions *session.Store
	Store    store.Store
}

// Middleware wraps a handler with the cross-cutting behavior for a route
type Middleware func(h http.HandlerFunc, deps *Deps, rateLimit bool) http.Handler

// APIMw is the middleware for API routes
func APIMw(h http.HandlerFunc, deps *Deps, rateLimit bool) http.Handler {
	return ApplyLimit(h, rateLimit)
}

// Global wraps the router with the middleware applied to every request
func Global(h http.Handler) http.Handler {
	return logging(h)
}

// logging logs each request
func logging(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"method": r.Method,
			"uri":    r.RequestURI,
			"remote": lookupIP(r),
		}).Debug("request")
	})
}

// GetCredential extracts the session key from the request. It accepts a
// bearer token in the Authorization header.
func GetCredential(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// DoError logs the error and responds with the given status
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).ErrorWrap(err, msg)

	http.Error(w, http.StatusText(statusCode), statusCode)
}

// RespondUnauthorized responds with 401
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// NotSupported is the handler for unsupported routes
var NotSupported = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
})
