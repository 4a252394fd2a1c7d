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
	"net/http"

	"github.com/gorilla/mux"

	mw "github.com/amity/amity/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	Routes      []Route
}

// NewRoutes returns the API route table
func NewRoutes(deps *mw.Deps, c *Controllers, disableRegistration bool) []Route {
	ret := []Route{
		{"POST", "/login", c.Users.Login, true},
		{"POST", "/logout", mw.Auth(deps, c.Users.Logout), true},
		{"GET", "/me", mw.Auth(deps, c.Users.Me), true},
		{"PATCH", "/profile", mw.Auth(deps, c.Users.UpdateProfile), true},
		{"PATCH", "/remark", mw.Auth(deps, c.Users.UpdateRemark), true},
		{"PATCH", "/status", mw.Auth(deps, c.Users.UpdateStatus), true},

		{"GET", "/friends", mw.Auth(deps, c.Friends.Index), true},
		{"DELETE", "/friends/{friendID}", mw.Auth(deps, c.Friends.Delete), true},
		{"GET", "/friend-requests", mw.Auth(deps, c.Friends.Requests), true},
		{"POST", "/friend-requests", mw.Auth(deps, c.Friends.Create), true},
		{"POST", "/friend-requests/{senderID}/accept", mw.Auth(deps, c.Friends.Accept), true},
		{"POST", "/friend-requests/{senderID}/reject", mw.Auth(deps, c.Friends.Reject), true},

		{"POST", "/chats", mw.Auth(deps, c.Chats.Create), true},
		{"GET", "/chats/{friendID}", mw.Auth(deps, c.Chats.Index), true},

		{"POST", "/moods", mw.Auth(deps, c.Moods.Create), true},
		{"GET", "/moods", mw.Auth(deps, c.Moods.Index), true},
		{"GET", "/moods/calendar", mw.Auth(deps, c.Moods.Calendar), true},

		{"POST", "/posts", mw.Auth(deps, c.Posts.Create), true},
		{"GET", "/posts", mw.Auth(deps, c.Posts.Index), true},
		{"GET", "/users/{userID}/posts", mw.Auth(deps, c.Posts.Index), true},

		{"GET", "/health", c.Health.Index, true},
	}

	if !disableRegistration {
		ret = append(ret, Route{"POST", "/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, deps *mw.Deps, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, deps, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(deps *mw.Deps, rc RouteConfig) (http.Handler, error) {
	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, deps, rc.Routes)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})

	// catch-all
	router.PathPrefix("/").Handler(mw.ApplyLimit(mw.NotSupported, true))

	return mw.Global(router), nil
}
