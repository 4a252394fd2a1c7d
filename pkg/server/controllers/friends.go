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

	"github.com/amity/amity/pkg/server/context"
	"github.com/amity/amity/pkg/store"
)

// NewFriends creates a new Friends controller
func NewFriends(app *App) *Friends {
	return &Friends{app: app}
}

// Friends is a friendship controller
type Friends struct {
	app *App
}

// Index handles GET /friends
func (f *Friends) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	friends, err := f.app.Manager.Friends(user.ID)
	if err != nil {
		handleError(w, "loading friends", err)
		return
	}

	respondJSON(w, http.StatusOK, presentFriends(friends))
}

// Requests handles GET /friend-requests
func (f *Friends) Requests(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	requests, err := f.app.Manager.PendingRequests(user.ID)
	if err != nil {
		handleError(w, "loading requests", err)
		return
	}

	respondJSON(w, http.StatusOK, presentRequests(requests))
}

type requestForm struct {
	Username string `schema:"username"`
}

// codeStatuses maps a request outcome to its HTTP status
var codeStatuses = map[string]int{
	store.CodeOK:             http.StatusCreated,
	store.CodeSelfRequest:    http.StatusBadRequest,
	store.CodeAlreadyFriends: http.StatusConflict,
	store.CodeAlreadySent:    http.StatusConflict,
	store.CodeNotFound:       http.StatusNotFound,
}

// Create handles POST /friend-requests. The response body carries the
// outcome code; the presentation layer maps it to a message.
func (f *Friends) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form requestForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing request", err)
		return
	}

	code, err := f.app.Manager.SendFriendRequest(user.ID, form.Username)
	if err != nil {
		handleError(w, "sending friend request", err)
		return
	}

	respondJSON(w, codeStatuses[code], map[string]string{"code": code})
}

// Accept handles POST /friend-requests/{senderID}/accept
func (f *Friends) Accept(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	senderID, err := pathID(r, "senderID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sender id"})
		return
	}

	if err := f.app.Manager.AcceptRequest(user.ID, senderID); err != nil {
		handleError(w, "accepting friend request", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reject handles POST /friend-requests/{senderID}/reject
func (f *Friends) Reject(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	senderID, err := pathID(r, "senderID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sender id"})
		return
	}

	if err := f.app.Manager.RejectRequest(user.ID, senderID); err != nil {
		handleError(w, "rejecting friend request", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /friends/{friendID}. The chat history with the
// friend is deleted along with the friendship.
func (f *Friends) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	friendID, err := pathID(r, "friendID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid friend id"})
		return
	}

	if err := f.app.Manager.Unfriend(user.ID, friendID); err != nil {
		handleError(w, "unfriending", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
