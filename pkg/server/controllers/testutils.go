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

package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	mw "github.com/amity/amity/pkg/server/middleware"
)

// MustNewServer is a test utility function to initialize a new server
// with the given app
func MustNewServer(t *testing.T, a *App) *httptest.Server {
	server, err := NewServer(a)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing router"))
	}

	return server
}

// NewServer initializes a test server with the given app
func NewServer(a *App) (*httptest.Server, error) {
	deps := &mw.Deps{Sessions: a.Sessions, Store: a.Manager.Store}

	ctl := New(a)
	rc := RouteConfig{
		Routes:      NewRoutes(deps, ctl, a.DisableRegistration),
		Controllers: ctl,
	}

	r, err := NewRouter(deps, rc)
	if err != nil {
		return nil, errors.Wrap(err, "initializing router")
	}

	server := httptest.NewServer(r)

	return server, nil
}
