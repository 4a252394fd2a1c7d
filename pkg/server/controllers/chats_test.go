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
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/amity/amity/pkg/assert"
)

func TestSendAndListChats(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess1 := mustRegisterAndLogin(t, server.URL, "user1")
	sess2 := mustRegisterAndLogin(t, server.URL, "user2")

	res := postForm(t, server.URL, "/api/chats", sess1.Key, url.Values{
		"receiver_id": {strconv.Itoa(sess2.User.ID)},
		"content":     {"hi"},
	})
	assert.StatusCodeEquals(t, res, http.StatusCreated, "send status mismatch")
	var sent ChatPayload
	if err := json.NewDecoder(res.Body).Decode(&sent); err != nil {
		t.Fatal(err, "decoding sent chat")
	}
	res.Body.Close()
	assert.Equal(t, sent.Content, "hi", "sent content mismatch")

	res = postForm(t, server.URL, "/api/chats", sess2.Key, url.Values{
		"receiver_id": {strconv.Itoa(sess1.User.ID)},
		"content":     {"hello back"},
	})
	res.Body.Close()
	assert.StatusCodeEquals(t, res, http.StatusCreated, "reply status mismatch")

	// both participants see the same history in send order
	for _, key := range []string{sess1.Key, sess2.Key} {
		res = get(t, server.URL, fmt.Sprintf("/api/chats/%d", sess2.User.ID), key)
		if key == sess2.Key {
			res.Body.Close()
			res = get(t, server.URL, fmt.Sprintf("/api/chats/%d", sess1.User.ID), key)
		}
		assert.StatusCodeEquals(t, res, http.StatusOK, "history status mismatch")
		var history []ChatPayload
		if err := json.NewDecoder(res.Body).Decode(&history); err != nil {
			t.Fatal(err, "decoding history")
		}
		res.Body.Close()
		assert.Equal(t, len(history), 2, "history length mismatch")
		assert.Equal(t, history[0].Content, "hi", "first message mismatch")
		assert.Equal(t, history[1].Content, "hello back", "second message mismatch")
	}
}

func TestSendChat_Empty(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess1 := mustRegisterAndLogin(t, server.URL, "user1")
	sess2 := mustRegisterAndLogin(t, server.URL, "user2")

	res := postForm(t, server.URL, "/api/chats", sess1.Key, url.Values{
		"receiver_id": {strconv.Itoa(sess2.User.ID)},
		"content":     {"   "},
	})
	defer res.Body.Close()

	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status mismatch")
}

func TestSendChat_UnknownReceiver(t *testing.T) {
	app := newTestApp(t)
	server := MustNewServer(t, app)
	defer server.Close()

	sess1 := mustRegisterAndLogin(t, server.URL, "user1")

	res := postForm(t, server.URL, "/api/chats", sess1.Key, url.Values{
		"receiver_id": {"999"},
		"content":     {"hi"},
	})
	defer res.Body.Close()

	assert.StatusCodeEquals(t, res, http.StatusNotFound, "status mismatch")
}
