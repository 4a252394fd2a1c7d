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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/server/context"
	"github.com/amity/amity/pkg/server/session"
	"github.com/amity/amity/pkg/store/document"
)

func newTestDeps(t *testing.T) (*Deps, model.User) {
	t.Helper()

	s, err := document.New(t.TempDir(), document.Options{})
	if err != nil {
		t.Fatal(err, "initializing store")
	}

	user, err := s.CreateUser(model.NewUser(0, "alice", "hash", clock.NewMock().Now()))
	if err != nil {
		t.Fatal(err, "creating user")
	}

	return &Deps{
		Sessions: session.NewStore(clock.New()),
		Store:    s,
	}, user
}

func TestAuth(t *testing.T) {
	deps, user := newTestDeps(t)

	sess, err := deps.Sessions.Create(user.ID)
	if err != nil {
		t.Fatal(err, "creating session")
	}

	var gotUser *model.User
	handler := Auth(deps, func(w http.ResponseWriter, r *http.Request) {
		gotUser = context.User(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sess.Key))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, rec.Code, http.StatusOK, "status mismatch")
	if gotUser == nil {
		t.Fatal("user should be placed on the context")
	}
	assert.Equal(t, gotUser.ID, user.ID, "context user mismatch")
}

func TestAuth_MissingCredential(t *testing.T) {
	deps, _ := newTestDeps(t)

	handler := Auth(deps, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, rec.Code, http.StatusUnauthorized, "status mismatch")
}

func TestAuth_BadKey(t *testing.T) {
	deps, _ := newTestDeps(t)

	handler := Auth(deps, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer no-such-session")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, rec.Code, http.StatusUnauthorized, "status mismatch")
}

func TestGetCredential(t *testing.T) {
	testCases := []struct {
		header   string
		expected string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		got := GetCredential(req)
		assert.Equal(t, got, tc.expected, fmt.Sprintf("credential mismatch for header %q", tc.header))
	}
}
