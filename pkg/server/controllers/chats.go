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

// NewChats creates a new Chats controller
func NewChats(app *App) *Chats {
	return &Chats{app: app}
}

// Chats is a messaging controller
type Chats struct {
	app *App
}

type messageForm struct {
	ReceiverID int    `schema:"receiver_id"`
	Content    string `schema:"content"`
}

// Create handles POST /chats
func (c *Chats) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form messageForm
	if err := parseForm(r, &form); err != nil {
		handleError(w, "parsing message", err)
		return
	}

	chat, err := c.app.Manager.SendMessage(user.ID, form.ReceiverID, form.Content)
	if err != nil {
		handleError(w, "sending message", err)
		return
	}

	respondJSON(w, http.StatusCreated, ChatPayload{
		ID:       chat.ID,
		Sender:   chat.Sender,
		Receiver: chat.Receiver,
		Content:  chat.Content,
	})
}

// Index handles GET /chats/{friendID}
func (c *Chats) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	friendID, err := pathID(r, "friendID")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid friend id"})
		return
	}

	chats, err := c.app.Manager.ChatHistory(user.ID, friendID)
	if err != nil {
		handleError(w, "loading chat history", err)
		return
	}

	respondJSON(w, http.StatusOK, presentChats(chats))
}
