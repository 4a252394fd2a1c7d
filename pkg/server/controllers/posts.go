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
)

// NewPosts creates a new Posts controller
func NewPosts(app *App) *Posts {
	return &Posts{app: app}
}

// Posts is an image post controller
type Posts struct {
	app *App
}

// Create handles POST /posts. The request is a multipart form with an
// "image" part.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid upload"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing image"})
		return
	}
	defer file.Close()

	post, err := p.app.Manager.AddPost(user.ID, file, extOf(header.Filename))
	if err != nil {
		handleError(w, "adding post", err)
		return
	}

	respondJSON(w, http.StatusCreated, PostPayload{
		ID:        post.ID,
		UserID:    post.UserID,
		ImagePath: post.ImagePath,
		Datetime:  post.Datetime,
	})
}

// Index handles GET /posts and GET /users/{userID}/posts
func (p *Posts) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	userID := user.ID
	if _, ok := muxVar(r, "userID"); ok {
		id, err := pathID(r, "userID")
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
			return
		}
		userID = id
	}

	posts, err := p.app.Manager.Posts(userID)
	if err != nil {
		handleError(w, "loading posts", err)
		return
	}

	respondJSON(w, http.StatusOK, presentPosts(posts))
}
