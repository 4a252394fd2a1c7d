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
	"strconv"
	"time"

	"github.com/amity/amity/pkg/server/context"
)

// NewMoods creates a new Moods controller
func NewMoods(app *App) *Moods {
	return &Moods{app: app}
}

// Moods is a mood tracking controller
type Moods struct {
	app *App
}

type moodForm struct {
	Mood string `schema:"mood"`
}

// Create handles POST /moods. It upserts today's mood.
func (m *Moods) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form moodForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing mood", err)
		return
	}

	if err := m.app.Manager.SetDailyMood(user.ID, form.Mood); err != nil {
		handleError(w, "recording mood", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Index handles GET /moods. With a "days" query parameter it returns one
// entry per day for the last n days; otherwise every recorded entry.
func (m *Moods) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days < 1 {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid days"})
			return
		}

		entries, err := m.app.Manager.LastNDaysMoods(user.ID, days)
		if err != nil {
			handleError(w, "loading moods", err)
			return
		}

		respondJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := m.app.Manager.UserMoods(user.ID)
	if err != nil {
		handleError(w, "loading moods", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// Calendar handles GET /moods/calendar?year=&month=. It returns one entry
// for every day of the month.
func (m *Moods) Calendar(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	now := m.app.Manager.Clock.Now()
	year := now.Year()
	month := now.Month()

	if p := r.URL.Query().Get("year"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
			return
		}
		year = v
	}
	if p := r.URL.Query().Get("month"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 || v > 12 {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid month"})
			return
		}
		month = time.Month(v)
	}

	entries, err := m.app.Manager.MonthlyMoods(user.ID, year, month)
	if err != nil {
		handleError(w, "loading mood calendar", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
