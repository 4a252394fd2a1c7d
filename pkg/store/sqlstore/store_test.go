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

package sqlstore

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err, "opening test database")
	}
	if err := InitSchema(db); err != nil {
		t.Fatal(err, "migrating test database")
	}

	return New(db)
}

func mustCreateUser(t *testing.T, s *Store, username string) model.User {
	t.Helper()

	u := model.User{
		Username:       username,
		Password:       "userPW101",
		ChatIDs:        []int{},
		Friends:        []model.EdgeRef{},
		FriendRequests: []model.EdgeRef{},
	}
	created, err := s.CreateUser(u)
	if err != nil {
		t.Fatal(err, "creating user")
	}

	return created
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	u1 := mustCreateUser(t, s, "alice")
	u2 := mustCreateUser(t, s, "bob")

	assert.Equal(t, u1.ID, 1, "first user id mismatch")
	assert.Equal(t, u2.ID, 2, "second user id mismatch")

	got, err := s.UserByUsername("alice")
	if err != nil {
		t.Fatal(err, "getting user")
	}
	assert.Equal(t, got.ID, u1.ID, "looked up user id mismatch")
	assert.Equal(t, got.Username, "alice", "looked up username mismatch")
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "alice")
	_, err := s.CreateUser(model.User{Username: "alice", Password: "userPW101"})

	if !stderrors.Is(err, model.ErrDuplicateUsername) {
		t.Errorf("expected duplicate username error, got %v", err)
	}
}

func TestUserByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UserByID(42)
	if !stderrors.Is(err, store.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSaveUsers(t *testing.T) {
	s := newTestStore(t)

	u := mustCreateUser(t, s, "alice")
	u.Status = model.StatusOnline
	u.Remark = "hello world"

	if err := s.SaveUsers(u); err != nil {
		t.Fatal(err, "saving user")
	}

	got, err := s.UserByID(u.ID)
	if err != nil {
		t.Fatal(err, "getting user")
	}
	assert.Equal(t, got.Status, model.StatusOnline, "status mismatch")
	assert.Equal(t, got.Remark, "hello world", "remark mismatch")
}

func TestFriendship(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if err := s.AddFriendRequest(alice.ID, bob.ID, "01/06/2025"); err != nil {
		t.Fatal(err, "adding request")
	}
	// duplicate is a no-op under the pair constraint
	if err := s.AddFriendRequest(alice.ID, bob.ID, "02/06/2025"); err != nil {
		t.Fatal(err, "adding duplicate request")
	}

	gotBob, err := s.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err, "getting receiver")
	}
	assert.Equal(t, len(gotBob.FriendRequests), 1, "pending request count mismatch")
	assert.Equal(t, gotBob.FriendRequests[0].UserID, alice.ID, "request sender mismatch")
	assert.Equal(t, gotBob.FriendRequests[0].Date, "01/06/2025", "request date mismatch")

	if err := s.AcceptFriendRequest(bob.ID, alice.ID, "03/06/2025"); err != nil {
		t.Fatal(err, "accepting request")
	}

	gotBob, err = s.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err, "getting receiver")
	}
	gotAlice, err := s.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err, "getting sender")
	}

	assert.Equal(t, len(gotBob.FriendRequests), 0, "request should be consumed")
	assert.Equal(t, len(gotBob.Friends), 1, "receiver friend count mismatch")
	assert.Equal(t, len(gotAlice.Friends), 1, "sender friend count mismatch")
	assert.Equal(t, gotBob.Friends[0].UserID, alice.ID, "receiver edge mismatch")
	assert.Equal(t, gotAlice.Friends[0].UserID, bob.ID, "sender edge mismatch")
	assert.Equal(t, gotAlice.Friends[0].Date, "03/06/2025", "edge date mismatch")

	if err := s.RemoveFriendship(alice.ID, bob.ID); err != nil {
		t.Fatal(err, "removing friendship")
	}

	gotAlice, err = s.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err, "getting sender")
	}
	assert.Equal(t, len(gotAlice.Friends), 0, "edges should be removed")
}

func TestChats(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	c1, err := s.CreateChat(alice.ID, bob.ID, "hi")
	if err != nil {
		t.Fatal(err, "creating chat")
	}
	c2, err := s.CreateChat(bob.ID, alice.ID, "hey")
	if err != nil {
		t.Fatal(err, "creating chat")
	}
	if _, err := s.CreateChat(alice.ID, carol.ID, "other thread"); err != nil {
		t.Fatal(err, "creating chat")
	}

	history, err := s.ChatsBetween(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err, "getting history")
	}
	assert.Equal(t, len(history), 2, "history length mismatch")
	assert.Equal(t, history[0].ID, c1.ID, "first message mismatch")
	assert.Equal(t, history[1].ID, c2.ID, "second message mismatch")
	assert.Equal(t, history[1].Content, "hey", "message content mismatch")

	if err := s.DeleteChatsBetween(alice.ID, bob.ID); err != nil {
		t.Fatal(err, "deleting chats")
	}

	history, err = s.ChatsBetween(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err, "getting history")
	}
	assert.Equal(t, len(history), 0, "history should be empty")

	other, err := s.ChatsBetween(alice.ID, carol.ID)
	if err != nil {
		t.Fatal(err, "getting other history")
	}
	assert.Equal(t, len(other), 1, "other thread should be untouched")
}

func TestPosts(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")

	id1, err := s.AllocatePostID()
	if err != nil {
		t.Fatal(err, "allocating post id")
	}
	id2, err := s.AllocatePostID()
	if err != nil {
		t.Fatal(err, "allocating post id")
	}
	assert.Equal(t, id2, id1+1, "post ids should be sequential")

	p1 := model.Post{ID: id1, UserID: alice.ID, ImagePath: "alice_post1.png", Datetime: "01/06/2025"}
	p2 := model.Post{ID: id2, UserID: alice.ID, ImagePath: "alice_post2.png", Datetime: "02/06/2025"}
	if err := s.CreatePost(p1); err != nil {
		t.Fatal(err, "creating post")
	}
	if err := s.CreatePost(p2); err != nil {
		t.Fatal(err, "creating post")
	}

	posts, err := s.PostsByUser(alice.ID)
	if err != nil {
		t.Fatal(err, "getting posts")
	}
	assert.Equal(t, len(posts), 2, "post count mismatch")
	assert.Equal(t, posts[0].ID, id2, "posts should be newest first")
	assert.Equal(t, posts[1].ImagePath, "alice_post1.png", "post image path mismatch")
}

func TestSetMood_Upsert(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")

	if err := s.SetMood(alice.ID, "2025-06-01", "happy"); err != nil {
		t.Fatal(err, "setting mood")
	}
	if err := s.SetMood(alice.ID, "2025-06-02", "sad"); err != nil {
		t.Fatal(err, "setting mood")
	}
	// same date overwrites
	if err := s.SetMood(alice.ID, "2025-06-01", "excited"); err != nil {
		t.Fatal(err, "overwriting mood")
	}

	mood, err := s.MoodsByUser(alice.ID)
	if err != nil {
		t.Fatal(err, "getting moods")
	}
	assert.Equal(t, len(mood.Moods), 2, "mood count mismatch")
	assert.Equal(t, mood.Moods[0].Date, "2025-06-01", "mood order mismatch")
	assert.Equal(t, mood.Moods[0].Mood, "excited", "mood should be overwritten")
	assert.Equal(t, mood.Moods[1].Mood, "sad", "second mood mismatch")
}
