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

// Package store defines the contract shared by the persistence backends
package store

import (
	"github.com/amity/amity/pkg/model"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrLockTimeout is an error for failing to acquire the document lock
	// within the bounded wait. The operation is safe to retry.
	ErrLockTimeout = errors.New("timed out waiting for the document lock")
	// ErrCorrupt is an error for a persisted document that remained
	// malformed after the bounded re-read attempts
	ErrCorrupt = errors.New("persisted document is corrupt")
)

// Friend request outcome codes. The presentation layer maps these to
// user-facing messages.
const (
	CodeOK             = "ok"
	CodeSelfRequest    = "self_request"
	CodeAlreadyFriends = "already_friends"
	CodeAlreadySent    = "already_sent"
	CodeNotFound       = "not_found"
)

// Store is the contract implemented by both the document backend and the
// relational backend. All operations are keyed by user id; callers resolve
// usernames through UserByUsername first.
//
// Reads always reflect the durable state, not a long-lived cache: callers
// may run in separate processes against the same backing store.
type Store interface {
	// Users returns every user record
	Users() ([]model.User, error)
	// UserByID returns the user with the given id, or ErrNotFound
	UserByID(id int) (model.User, error)
	// UserByUsername returns the user with the given username, or ErrNotFound
	UserByUsername(username string) (model.User, error)
	// CreateUser durably appends the given user under a freshly allocated
	// id and returns the stored record. It fails with
	// model.ErrDuplicateUsername if the username is taken.
	CreateUser(user model.User) (model.User, error)
	// SaveUsers persists the given mutated user records. The document
	// backend reconciles them against the freshly read on-disk state
	// per user id; the relational backend updates the rows.
	SaveUsers(users ...model.User) error

	// AddFriendRequest records a pending request from sender to receiver.
	// Recording the same pending request twice is a no-op.
	AddFriendRequest(senderID, receiverID int, date string) error
	// RemoveFriendRequest deletes the pending request, if present.
	// Removing an absent request is a no-op.
	RemoveFriendRequest(senderID, receiverID int) error
	// AcceptFriendRequest records the symmetric friend edges between the
	// two users and deletes the pending request, as one atomic step of the
	// backend. Duplicate edge inserts are idempotent.
	AcceptFriendRequest(receiverID, senderID int, date string) error
	// RemoveFriendship deletes both symmetric friend edges
	RemoveFriendship(userID, friendID int) error

	// CreateChat durably appends a message under a freshly allocated chat id
	CreateChat(sender, receiver int, content string) (model.Chat, error)
	// ChatsBetween returns the messages exchanged between the two users,
	// in both directions, ordered by chat id
	ChatsBetween(userID, friendID int) ([]model.Chat, error)
	// DeleteChatsBetween deletes every message exchanged between the two users
	DeleteChatsBetween(userID, friendID int) error

	// AllocatePostID returns a fresh post id. The id is durably reserved
	// before the caller writes the image file named after it.
	AllocatePostID() (int, error)
	// CreatePost records the post metadata under a previously allocated id
	CreatePost(post model.Post) error
	// PostsByUser returns the user's posts, newest first
	PostsByUser(userID int) ([]model.Post, error)

	// SetMood upserts the user's mood for the given date
	SetMood(userID int, date, label string) error
	// MoodsByUser returns the user's mood entries. A user with no entries
	// yields an empty group, not an error.
	MoodsByUser(userID int) (model.Mood, error)
}
