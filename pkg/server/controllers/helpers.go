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
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/server/middleware"
	"github.com/amity/amity/pkg/store"
)

// maxUploadBytes caps the in-memory portion of a multipart upload
const maxUploadBytes = 10 << 20

var formDecoder = schema.NewDecoder()

// extOf returns the lowercased extension of an uploaded filename,
// including the dot
func extOf(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// parseForm decodes the request's form values into dst
func parseForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "parsing form")
	}
	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return errors.Wrap(err, "decoding form")
	}

	return nil
}

// respondJSON writes the payload as a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		middleware.DoError(w, "encoding response", err, http.StatusInternalServerError)
	}
}

// handleError responds with a status derived from the error kind
func handleError(w http.ResponseWriter, msg string, err error) {
	var verr manager.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, manager.ErrEmptyContent):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": manager.ErrEmptyContent.Error()})
	case errors.Is(err, store.ErrLockTimeout):
		// the operation is retryable
		middleware.DoError(w, msg, err, http.StatusServiceUnavailable)
	default:
		middleware.DoError(w, msg, err, http.StatusInternalServerError)
	}
}

// pathID parses the named integer variable from the route path
func pathID(r *http.Request, name string) (int, error) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0, errors.Wrapf(err, "parsing '%s'", name)
	}

	return id, nil
}

// muxVar reports whether the named variable is present on the route path
func muxVar(r *http.Request, name string) (string, bool) {
	v, ok := mux.Vars(r)[name]
	return v, ok
}
