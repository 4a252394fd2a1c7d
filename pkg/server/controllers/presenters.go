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
	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/server/session"
)

// UserPayload is the API representation of a user. The password hash
// never leaves the server.
type UserPayload struct {
	ID         int    `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Birthday   string `json:"bday"`
	ContactNum string `json:"contact_num"`
	ProfilePic string `json:"profile_pic"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
	Remark     string `json:"remark"`
}

func presentUser(u model.User) UserPayload {
	return UserPayload{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Gender:     u.Gender,
		Birthday:   u.Birthday,
		ContactNum: u.ContactNum,
		ProfilePic: u.ProfilePic,
		Status:     u.Status,
		LastActive: u.LastActive,
		Remark:     u.Remark,
	}
}

// SessionPayload is the API representation of a login session. The
// expiry travels as Unix seconds.
type SessionPayload struct {
	Key       string      `json:"key"`
	ExpiresAt int64       `json:"expires_at"`
	User      UserPayload `json:"user"`
}

func presentSession(s session.Session, u model.User) SessionPayload {
	return SessionPayload{
		Key:       s.Key,
		ExpiresAt: s.ExpiresAt.Unix(),
		User:      presentUser(u),
	}
}

// FriendPayload is the API representation of a confirmed friendship
type FriendPayload struct {
	User  UserPayload `json:"user"`
	Since string      `json:"since"`
}

func presentFriends(infos []manager.FriendInfo) []FriendPayload {
	ret := make([]FriendPayload, 0, len(infos))
	for _, info := range infos {
		ret = append(ret, FriendPayload{User: presentUser(info.User), Since: info.Since})
	}

	return ret
}

// RequestPayload is the API representation of a pending friend request
type RequestPayload struct {
	User UserPayload `json:"user"`
	Date string      `json:"date"`
}

func presentRequests(infos []manager.RequestInfo) []RequestPayload {
	ret := make([]RequestPayload, 0, len(infos))
	for _, info := range infos {
		ret = append(ret, RequestPayload{User: presentUser(info.User), Date: info.Date})
	}

	return ret
}

// ChatPayload is the API representation of a message
type ChatPayload struct {
	ID       int    `json:"chat_id"`
	Sender   int    `json:"sender"`
	Receiver int    `json:"receiver"`
	Content  string `json:"content"`
}

func presentChats(chats []model.Chat) []ChatPayload {
	ret := make([]ChatPayload, 0, len(chats))
	for _, c := range chats {
		ret = append(ret, ChatPayload{ID: c.ID, Sender: c.Sender, Receiver: c.Receiver, Content: c.Content})
	}

	return ret
}

// PostPayload is the API representation of a post
type PostPayload struct {
	ID        int    `json:"post_id"`
	UserID    int    `json:"user_id"`
	ImagePath string `json:"image_path"`
	Datetime  string `json:"datetime"`
}

func presentPosts(posts []model.Post) []PostPayload {
	ret := make([]PostPayload, 0, len(posts))
	for _, p := range posts {
		ret = append(ret, PostPayload{ID: p.ID, UserID: p.UserID, ImagePath: p.ImagePath, Datetime: p.Datetime})
	}

	return ret
}
