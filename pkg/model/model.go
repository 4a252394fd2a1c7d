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

// Package model defines the Amity entities and their document wire format
package model

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// User statuses
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Date and time layouts used in the persisted documents
const (
	LastActiveLayout = "2006-01-02 15:04"
	EdgeDateLayout   = "02/01/2006"
	MoodDateLayout   = "2006-01-02"
	PostDateLayout   = "02/01/2006"
)

// EdgeRef is a dated reference to another user. It is used for both
// confirmed friendships and pending friend requests, and serializes
// as a two-element [date, user_id] tuple in the document store.
type EdgeRef struct {
	Date   string
	UserID int
}

// MarshalJSON implements json.Marshaler
func (e EdgeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Date, e.UserID})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EdgeRef) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return errors.Wrap(err, "unmarshalling edge tuple")
	}
	if len(tuple) != 2 {
		return errors.Errorf("malformed edge tuple of length %d", len(tuple))
	}

	if err := json.Unmarshal(tuple[0], &e.Date); err != nil {
		return errors.Wrap(err, "unmarshalling edge date")
	}
	if err := json.Unmarshal(tuple[1], &e.UserID); err != nil {
		return errors.Wrap(err, "unmarshalling edge user id")
	}

	return nil
}

// User is a registered account together with its profile and
// relationship collections
type User struct {
	ID             int       `json:"user_id"`
	Username       string    `json:"username"`
	Password       string    `json:"password"`
	Name           string    `json:"name"`
	Gender         string    `json:"gender"`
	Birthday       string    `json:"bday"`
	ContactNum     string    `json:"contact_num"`
	ProfilePic     string    `json:"profile_pic"`
	Status         string    `json:"status"`
	LastActive     string    `json:"last_active"`
	Remark         string    `json:"remark"`
	ChatIDs        []int     `json:"chat_ids"`
	Friends        []EdgeRef `json:"friends"`
	FriendRequests []EdgeRef `json:"friend_request"`
}

// NewUser constructs a freshly registered user with an empty profile,
// an online status and empty relationship collections.
func NewUser(id int, username, password string, now time.Time) User {
	return User{
		ID:             id,
		Username:       username,
		Password:       password,
		Status:         StatusOnline,
		LastActive:     now.Format(LastActiveLayout),
		ChatIDs:        []int{},
		Friends:        []EdgeRef{},
		FriendRequests: []EdgeRef{},
	}
}

// IsFriend checks if the user has a confirmed friendship with the given user
func (u User) IsFriend(userID int) bool {
	for _, f := range u.Friends {
		if f.UserID == userID {
			return true
		}
	}

	return false
}

// HasRequestFrom checks if the user has a pending friend request from the
// given sender
func (u User) HasRequestFrom(senderID int) bool {
	for _, r := range u.FriendRequests {
		if r.UserID == senderID {
			return true
		}
	}

	return false
}

// Chat is a single message between two users. It is immutable once
// created except for the unfriend cascade, which deletes it.
type Chat struct {
	ID       int    `json:"chat_id"`
	Sender   int    `json:"sender"`
	Receiver int    `json:"receiver"`
	Content  string `json:"content"`
}

// NewChat constructs a chat message
func NewChat(id, sender, receiver int, content string) Chat {
	return Chat{
		ID:       id,
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
	}
}

// Between checks whether the message was exchanged between the two given
// users, in either direction
func (c Chat) Between(a, b int) bool {
	return (c.Sender == a && c.Receiver == b) || (c.Sender == b && c.Receiver == a)
}

// Post is an image post owned by a user
type Post struct {
	ID        int    `json:"post_id"`
	UserID    int    `json:"user_id"`
	ImagePath string `json:"image_path"`
	Datetime  string `json:"datetime"`
}

// NewPost constructs a post
func NewPost(id, userID int, imagePath string, now time.Time) Post {
	return Post{
		ID:        id,
		UserID:    userID,
		ImagePath: imagePath,
		Datetime:  now.Format(PostDateLayout),
	}
}

// MoodEntry is a single dated mood record
type MoodEntry struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

// Mood groups the mood entries of one user. At most one entry exists
// per calendar day.
type Mood struct {
	UserID int         `json:"user_id"`
	Moods  []MoodEntry `json:"moods"`
}

// NewMood constructs an empty mood group for a user
func NewMood(userID int) Mood {
	return Mood{
		UserID: userID,
		Moods:  []MoodEntry{},
	}
}

// Entry returns the mood entry for the given date, if any
func (m Mood) Entry(date string) (MoodEntry, bool) {
	for _, e := range m.Moods {
		if e.Date == date {
			return e, true
		}
	}

	return MoodEntry{}, false
}
