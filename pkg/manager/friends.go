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
	"github.com/amity/amity/pkg/store"
)

// FriendInfo is a confirmed friendship resolved to the friend's record
type FriendInfo struct {
	User  model.User
	Since string
}

// RequestInfo is a pending request resolved to the sender's record
type RequestInfo struct {
	User model.User
	Date string
}

// SendFriendRequest records a pending request from the sender to the named
// user. The returned code is one of the store.Code values; mutation only
// happens on store.CodeOK.
func (m *Manager) SendFriendRequest(senderID int, receiverUsername string) (string, error) {
	receiver, err := m.Store.UserByUsername(receiverUsername)
	if errors.Is(err, store.ErrNotFound) {
		return store.CodeNotFound, nil
	} else if err != nil {
		return "", errors.Wrap(err, "finding receiver")
	}

	if receiver.ID == senderID {
		return store.CodeSelfRequest, nil
	}

	sender, err := m.Store.UserByID(senderID)
	if err != nil {
		return "", errors.Wrap(err, "finding sender")
	}

	if sender.IsFriend(receiver.ID) {
		return store.CodeAlreadyFriends, nil
	}
	if receiver.HasRequestFrom(senderID) || sender.HasRequestFrom(receiver.ID) {
		return store.CodeAlreadySent, nil
	}

	date := m.Clock.Now().Format(model.EdgeDateLayout)
	if err := m.Store.AddFriendRequest(senderID, receiver.ID, date); err != nil {
		return "", errors.Wrap(err, "recording request")
	}

	return store.CodeOK, nil
}

// AcceptRequest turns the pending request from sender into a confirmed
// friendship. It fails with store.ErrNotFound when no such request is
// pending.
func (m *Manager) AcceptRequest(receiverID, senderID int) error {
	receiver, err := m.Store.UserByID(receiverID)
	if err != nil {
		return errors.Wrap(err, "finding receiver")
	}

	if !receiver.HasRequestFrom(senderID) {
		return errors.Wrapf(store.ErrNotFound, "no pending request from user %d", senderID)
	}

	date := m.Clock.Now().Format(model.EdgeDateLayout)
	if err := m.Store.AcceptFriendRequest(receiverID, senderID, date); err != nil {
		return errors.Wrap(err, "recording friendship")
	}

	return nil
}

// RejectRequest drops the pending request from sender, if any. Rejecting
// an absent request is a no-op.
func (m *Manager) RejectRequest(receiverID, senderID int) error {
	if err := m.Store.RemoveFriendRequest(senderID, receiverID); err != nil {
		return errors.Wrap(err, "removing request")
	}

	return nil
}

// Unfriend removes the friendship and deletes the entire chat history
// between the pair. The deletion is irreversible; the caller confirms
// before invoking.
func (m *Manager) Unfriend(userID, friendID int) error {
	if err := m.Store.RemoveFriendship(userID, friendID); err != nil {
		return errors.Wrap(err, "removing friendship")
	}
	if err := m.Store.DeleteChatsBetween(userID, friendID); err != nil {
		return errors.Wrap(err, "deleting chat history")
	}

	return nil
}

// Friends returns the user's confirmed friendships with each friend's
// record resolved. Edges pointing at a deleted user are skipped.
func (m *Manager) Friends(userID int) ([]FriendInfo, error) {
	user, err := m.Store.UserByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "finding user")
	}

	ret := []FriendInfo{}
	for _, edge := range user.Friends {
		friend, err := m.Store.UserByID(edge.UserID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "resolving friend")
		}

		ret = append(ret, FriendInfo{User: friend, Since: edge.Date})
	}

	return ret, nil
}

// PendingRequests returns the requests awaiting the user's decision with
// each sender's record resolved
func (m *Manager) PendingRequests(userID int) ([]RequestInfo, error) {
	user, err := m.Store.UserByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "finding user")
	}

	ret := []RequestInfo{}
	for _, edge := range user.FriendRequests {
		sender, err := m.Store.UserByID(edge.UserID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "resolving sender")
		}

		ret = append(ret, RequestInfo{User: sender, Date: edge.Date})
	}

	return ret, nil
}
