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

package middleware

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/server/context"
	"github.com/amity/amity/pkg/server/session"
	"github.com/amity/amity/pkg/store"
)

// Auth is an authentication middleware. The resolved user and session are
// placed on the request context.
func Auth(deps *Deps, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, sess, ok, err := AuthWithSession(deps, r)
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		ctx = context.WithSession(ctx, &sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthWithSession resolves the request's bearer token to a user. A missing
// or expired session yields ok=false, not an error; errors are reserved
// for store failures.
func AuthWithSession(deps *Deps, r *http.Request) (model.User, session.Session, bool, error) {
	key := GetCredential(r)
	if key == "" {
		return model.User{}, session.Session{}, false, nil
	}

	sess, ok := deps.Sessions.Get(key)
	if !ok {
		return model.User{}, session.Session{}, false, nil
	}

	user, err := deps.Store.UserByID(sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// the user was deleted after logging in
		deps.Sessions.Delete(key)
		return model.User{}, session.Session{}, false, nil
	} else if err != nil {
		return model.User{}, session.Session{}, false, errors.Wrap(err, "finding session user")
	}

	return user, sess, true, nil
}
