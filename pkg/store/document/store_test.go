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

package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), Options{})
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing store"))
	}

	return s
}

func mustCreateUser(t *testing.T, s *Store, username string) model.User {
	t.Helper()

	u, err := s.CreateUser(model.NewUser(0, username, "userPW101", time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatal(errors.Wrapf(err, "creating user %s", username))
	}

	return u
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	assert.Equal(t, alice.ID, 1, "first id mismatch")
	assert.Equal(t, bob.ID, 2, "second id mismatch")

	got, err := s.UserByUsername("alice")
	if err != nil {
		t.Fatal(errors.Wrap(err, "finding alice"))
	}
	assert.Equal(t, got.ID, 1, "looked up id mismatch")
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "alice")

	_, err := s.CreateUser(model.NewUser(0, "alice", "otherPW101", time.Now()))
	assert.Equal(t, errors.Cause(err), model.ErrDuplicateUsername, "error mismatch")

	users, err := s.Users()
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing users"))
	}
	assert.Equal(t, len(users), 1, "duplicate registration must not create a record")
}

func TestUserByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UserByID(42)
	assert.Equal(t, errors.Cause(err), store.ErrNotFound, "error mismatch")
}

// TestSaveUsers_ConcurrentSessions is the core regression test for the
// merge protocol: two independent sessions load the same state, each
// mutates a different user, and both saves must survive in either order.
func TestSaveUsers_ConcurrentSessions(t *testing.T) {
	dir := t.TempDir()

	session1, err := New(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	session2, err := New(dir, Options{})
	if err != nil {
		t.Fatal(err)
	}

	alice := mustCreateUser(t, session1, "alice")
	bob := mustCreateUser(t, session1, "bob")

	// both sessions hold snapshots from before either mutation
	snap1, err := session1.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	snap2, err := session2.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err)
	}

	snap1.Remark = "session one was here"
	snap2.Status = model.StatusOffline

	if err := session1.SaveUsers(snap1); err != nil {
		t.Fatal(errors.Wrap(err, "saving session 1"))
	}
	if err := session2.SaveUsers(snap2); err != nil {
		t.Fatal(errors.Wrap(err, "saving session 2"))
	}

	finalAlice, err := session2.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	finalBob, err := session1.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, finalAlice.Remark, "session one was here", "session 1's edit was lost")
	assert.Equal(t, finalBob.Status, model.StatusOffline, "session 2's edit was lost")
}

// TestRoundTrip checks that loading and saving with no mutation in between
// leaves the deserialized entity set identical.
func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")
	if _, err := s.CreateChat(alice.ID, alice.ID, "note to self"); err != nil {
		t.Fatal(err)
	}

	before, err := s.Users()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SaveUsers(before...); err != nil {
		t.Fatal(errors.Wrap(err, "saving unchanged users"))
	}

	after, err := s.Users()
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, after, before, "round trip changed the entity set")
}

func TestCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "alice")

	path := filepath.Join(s.Dir(), UserFilename)
	if err := os.WriteFile(path, []byte(`{"users": [{"user_id":`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Users()
	assert.Equal(t, errors.Cause(err), store.ErrCorrupt, "error mismatch")
}

func TestLockTimeout(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir, Options{LockTimeout: 150 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	// hold the advisory lock as a competing session would
	release, err := s.lock(filepath.Join(dir, UserFilename))
	if err != nil {
		t.Fatal(errors.Wrap(err, "acquiring competing lock"))
	}
	defer release()

	_, err = s.Users()
	assert.Equal(t, errors.Cause(err), store.ErrLockTimeout, "error mismatch")
}

func TestFriendship(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if err := s.AddFriendRequest(alice.ID, bob.ID, "21/03/2025"); err != nil {
		t.Fatal(err)
	}
	// recording the same pending request twice is a no-op
	if err := s.AddFriendRequest(alice.ID, bob.ID, "22/03/2025"); err != nil {
		t.Fatal(err)
	}

	gotBob, err := s.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(gotBob.FriendRequests), 1, "pending request count mismatch")

	if err := s.AcceptFriendRequest(bob.ID, alice.ID, "21/03/2025"); err != nil {
		t.Fatal(err)
	}

	gotAlice, err := s.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	gotBob, err = s.UserByID(bob.ID)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, gotAlice.IsFriend(bob.ID), true, "alice should list bob")
	assert.Equal(t, gotBob.IsFriend(alice.ID), true, "bob should list alice")
	assert.Equal(t, len(gotBob.FriendRequests), 0, "request should be gone")

	if err := s.RemoveFriendship(alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	gotAlice, err = s.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, gotAlice.IsFriend(bob.ID), false, "friendship should be gone")
}

func TestChats(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	if _, err := s.CreateChat(alice.ID, bob.ID, "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateChat(bob.ID, alice.ID, "hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateChat(alice.ID, carol.ID, "hey carol"); err != nil {
		t.Fatal(err)
	}

	history, err := s.ChatsBetween(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(history), 2, "history length mismatch")
	assert.Equal(t, history[0].Content, "hi", "order mismatch")

	gotAlice, err := s.UserByID(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(gotAlice.ChatIDs), 3, "chat id bookkeeping mismatch")

	if err := s.DeleteChatsBetween(alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	history, err = s.ChatsBetween(alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(history), 0, "cascade should remove the pair's messages")

	other, err := s.ChatsBetween(alice.ID, carol.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(other), 1, "third-party messages must be untouched")
}

func TestPosts(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")

	id1, err := s.AllocatePostID()
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.AllocatePostID()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, id1, 1, "first post id mismatch")
	assert.Equal(t, id2, 2, "second post id mismatch")

	now := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	if err := s.CreatePost(model.NewPost(id1, alice.ID, "user_posts/1_post1.png", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePost(model.NewPost(id2, alice.ID, "user_posts/1_post2.png", now)); err != nil {
		t.Fatal(err)
	}

	posts, err := s.PostsByUser(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(posts), 2, "post count mismatch")
	assert.Equal(t, posts[0].ID, id2, "posts should be newest first")
}

func TestSetMood_Upsert(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")

	if err := s.SetMood(alice.ID, "2025-03-21", "happy"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMood(alice.ID, "2025-03-21", "tired"); err != nil {
		t.Fatal(err)
	}

	moods, err := s.MoodsByUser(alice.ID)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(moods.Moods), 1, "upsert should not append")
	assert.Equal(t, moods.Moods[0].Mood, "tired", "second write should win")
}
