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

// Package controllers implements the JSON API handlers. Controllers
// translate HTTP to facade operations and outcome codes back to statuses;
// domain rules live in the manager.
package controllers

import (
	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/server/session"
)

// App bundles the collaborators the controllers act on
type App struct {
	Manager             *manager.Manager
	Sessions            *session.Store
	DisableRegistration bool
}

// Controllers is a group of controllers
type Controllers struct {
	Users   *Users
	Friends *Friends
	Chats   *Chats
	Moods   *Moods
	Posts   *Posts
	Health  *Health
}

// New returns a new group of controllers
func New(app *App) *Controllers {
	c := Controllers{}

	c.Users = NewUsers(app)
	c.Friends = NewFriends(app)
	c.Chats = NewChats(app)
	c.Moods = NewMoods(app)
	c.Posts = NewPosts(app)
	c.Health = NewHealth(app)

	return &c
}
