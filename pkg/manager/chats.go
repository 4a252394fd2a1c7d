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

package manager

import (
	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
)

// SendMessage appends a message from sender to receiver. Markup is
// stripped from the content; a blank message fails with ErrEmptyContent.
func (m *Manager) SendMessage(senderID, receiverID int, content string) (model.Chat, error) {
	cleaned := sanitize(content)
	if cleaned == "" {
		return model.Chat{}, ErrEmptyContent
	}

	if _, err := m.Store.UserByID(receiverID); err != nil {
		return model.Chat{}, errors.Wrap(err, "finding receiver")
	}

	chat, err := m.Store.CreateChat(senderID, receiverID, cleaned)
	if err != nil {
		return model.Chat{}, errors.Wrap(err, "creating chat")
	}

	return chat, nil
}

// ChatHistory returns every message exchanged between the two users, in
// both directions, oldest first
func (m *Manager) ChatHistory(userID, friendID int) ([]model.Chat, error) {
	chats, err := m.Store.ChatsBetween(userID, friendID)
	if err != nil {
		return nil, errors.Wrap(err, "loading chats")
	}

	return chats, nil
}
