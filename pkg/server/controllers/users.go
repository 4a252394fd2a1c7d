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
	"strings"

	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/server/context"
)

// NewUsers creates a new Users controller
func NewUsers(app *App) *Users {
	return &Users{app: app}
}

// Users is a user controller
type Users struct {
	app *App
}

type registrationForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

// Register handles POST /register
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	if u.app.DisableRegistration {
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "registration is disabled"})
		return
	}

	var form registrationForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing registration", err)
		return
	}

	user, err := u.app.Manager.Register(form.Username, form.Password)
	if err != nil {
		handleError(w, "registering user", err)
		return
	}

	respondJSON(w, http.StatusCreated, presentUser(user))
}

type loginForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

// Login handles POST /login. A successful login opens a session and marks
// the user online.
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing login", err)
		return
	}

	ok, message, err := u.app.Manager.Authenticate(form.Username, form.Password)
	if err != nil {
		handleError(w, "authenticating", err)
		return
	}
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": message})
		return
	}

	user, err := u.app.Manager.Store.UserByUsername(form.Username)
	if err != nil {
		handleError(w, "finding user", err)
		return
	}

	if err := u.app.Manager.SetStatus(user.ID, model.StatusOnline); err != nil {
		handleError(w, "marking user online", err)
		return
	}

	sess, err := u.app.Sessions.Create(user.ID)
	if err != nil {
		handleError(w, "creating session", err)
		return
	}

	respondJSON(w, http.StatusOK, presentSession(sess, user))
}

// Logout handles POST /logout. It closes the session and marks the user
// offline.
func (u *Users) Logout(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	sess := context.Session(r.Context())

	if err := u.app.Manager.SetStatus(user.ID, model.StatusOffline); err != nil {
		handleError(w, "marking user offline", err)
		return
	}

	u.app.Sessions.Delete(sess.Key)

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	respondJSON(w, http.StatusOK, presentUser(*user))
}

// UpdateProfile handles PATCH /profile. The request is a multipart form;
// the picture part is optional.
func (u *Users) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	params, err := u.profileParams(r)
	if err != nil {
		handleError(w, "reading profile form", err)
		return
	}

	updated, err := u.app.Manager.UpdateProfile(user.ID, params)
	if err != nil {
		handleError(w, "updating profile", err)
		return
	}

	respondJSON(w, http.StatusOK, presentUser(updated))
}

func (u *Users) profileParams(r *http.Request) (manager.ProfileParams, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return manager.ProfileParams{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return manager.ProfileParams{}, err
	}

	params := manager.ProfileParams{
		Password:   r.FormValue("password"),
		Name:       r.FormValue("name"),
		Gender:     r.FormValue("gender"),
		Birthday:   r.FormValue("bday"),
		ContactNum: r.FormValue("contact_num"),
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("picture")
		if err == nil {
			params.Picture = file
			params.PictureExt = extOf(header.Filename)
		} else if err != http.ErrMissingFile {
			return manager.ProfileParams{}, err
		}
	}

	return params, nil
}

type remarkForm struct {
	Remark string `schema:"remark"`
}

// UpdateRemark handles PATCH /remark
func (u *Users) UpdateRemark(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form remarkForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing remark", err)
		return
	}

	updated, err := u.app.Manager.AddRemark(user.ID, form.Remark)
	if err != nil {
		handleError(w, "updating remark", err)
		return
	}

	respondJSON(w, http.StatusOK, presentUser(updated))
}

type statusForm struct {
	Status string `schema:"status"`
}

// UpdateStatus handles PATCH /status
func (u *Users) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form statusForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing status", err)
		return
	}

	if form.Status != model.StatusOnline && form.Status != model.StatusOffline {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}

	if err := u.app.Manager.SetStatus(user.ID, form.Status); err != nil {
		handleError(w, "setting status", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
