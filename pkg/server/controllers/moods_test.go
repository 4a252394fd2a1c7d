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
	"net/url"
	"testing"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/model"
)

func TestSetMood(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess := mustRegisterAndLogin(t, server.URL, "user1")

	res := postForm(t, server.URL, "/api/moods", sess.Key, url.Values{
		"mood": {"happy"},
	})
	res.Body.Close()
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "set status mismatch")

	res = get(t, server.URL, "/api/moods", sess.Key)
	assert.StatusCodeEquals(t, res, http.StatusOK, "list status mismatch")
	var entries []model.MoodEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		t.Fatal(err, "decoding entries")
	}
	res.Body.Close()

	assert.Equal(t, len(entries), 1, "entry count mismatch")
	assert.Equal(t, entries[0].Date, "2025-06-15", "date mismatch")
	assert.Equal(t, entries[0].Mood, "happy", "mood mismatch")
}

func TestSetMood_Invalid(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess := mustRegisterAndLogin(t, server.URL, "user1")

	res := postForm(t, server.URL, "/api/moods", sess.Key, url.Values{
		"mood": {"ecstatic"},
	})
	defer res.Body.Close()

	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
}

func TestMoodCalendar(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess := mustRegisterAndLogin(t, server.URL, "user1")

	res := postForm(t, server.URL, "/api/moods", sess.Key, url.Values{
		"mood": {"tired"},
	})
	res.Body.Close()

	res = get(t, server.URL, "/api/moods/calendar?year=2025&month=6", sess.Key)
	assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")
	var entries []model.MoodEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		t.Fatal(err, "decoding entries")
	}
	res.Body.Close()

	assert.Equal(t, len(entries), 30, "June should have 30 entries")
	assert.Equal(t, entries[0].Mood, model.MoodUnknown, "unset day mismatch")
	assert.Equal(t, entries[14].Date, "2025-06-15", "recorded day date mismatch")
	assert.Equal(t, entries[14].Mood, "tired", "recorded day mood mismatch")
}

func TestRecentMoods(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess := mustRegisterAndLogin(t, server.URL, "user1")

	res := postForm(t, server.URL, "/api/moods", sess.Key, url.Values{
		"mood": {"sad"},
	})
	res.Body.Close()

	res = get(t, server.URL, "/api/moods?days=3", sess.Key)
	assert.StatusCodeEquals(t, res, http.StatusOK, "status mismatch")
	var entries []model.MoodEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		t.Fatal(err, "decoding entries")
	}
	res.Body.Close()

	assert.Equal(t, len(entries), 3, "entry count mismatch")
	assert.Equal(t, entries[0].Date, "2025-06-15", "most recent date mismatch")
	assert.Equal(t, entries[0].Mood, "sad", "most recent mood mismatch")
	assert.Equal(t, entries[1].Mood, model.MoodUnknown, "gap mood mismatch")
}
