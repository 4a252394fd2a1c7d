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
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/images"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
	"github.com/amity/amity/pkg/store/document"
)

func newTestManager(t *testing.T) (*Manager, *clock.Mock) {
	t.Helper()

	s, err := document.New(t.TempDir(), document.Options{})
	if err != nil {
		t.Fatal(err, "initializing store")
	}

	imgs, err := images.New(t.TempDir())
	if err != nil {
		t.Fatal(err, "initializing image store")
	}

	c := clock.NewMock()
	c.SetNow(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC))

	return &Manager{Store: s, Clock: c, Images: imgs}, c
}

func mustRegister(t *testing.T, m *Manager, username string) model.User {
	t.Helper()

	user, err := m.Register(username, "userPW101")
	if err != nil {
		t.Fatal(err, "registering user")
	}

	return user
}

func TestValidate(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Validate(); err != nil {
		t.Errorf("expected valid configuration, got %v", err)
	}

	if err := (&Manager{Clock: clock.NewMock()}).Validate(); err != ErrEmptyStore {
		t.Errorf("expected ErrEmptyStore, got %v", err)
	}
	if err := (&Manager{Store: m.Store}).Validate(); err != ErrEmptyClock {
		t.Errorf("expected ErrEmptyClock, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	assert.Equal(t, user.ID, 1, "user id mismatch")
	assert.Equal(t, user.Username, "user1", "username mismatch")
	assert.Equal(t, user.Status, model.StatusOnline, "status mismatch")

	if user.Password == "userPW101" {
		t.Error("password should not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("userPW101")); err != nil {
		t.Error("stored password hash should match the password")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	m, _ := newTestManager(t)

	mustRegister(t, m, "user1")

	_, err := m.Register("user1", "userPW101")

	var verr ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	assert.Equal(t, len(verr.Reasons), 1, "reason count mismatch")
	if !stderrors.Is(verr.Reasons[0], model.ErrDuplicateUsername) {
		t.Errorf("expected duplicate username reason, got %v", verr.Reasons[0])
	}

	users, err := m.Store.Users()
	if err != nil {
		t.Fatal(err, "loading users")
	}
	assert.Equal(t, len(users), 1, "no duplicate record should be created")
}

func TestRegister_BadPassword(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register("user1", "short")

	var verr ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if !stderrors.Is(verr.Reasons[0], model.ErrPasswordTooShort) {
		t.Errorf("expected short password reason, got %v", verr.Reasons[0])
	}
}

func TestAuthenticate(t *testing.T) {
	m, _ := newTestManager(t)

	mustRegister(t, m, "user1")

	ok, _, err := m.Authenticate("user1", "userPW101")
	if err != nil {
		t.Fatal(err, "authenticating")
	}
	assert.Equal(t, ok, true, "valid credentials should authenticate")

	ok, message, err := m.Authenticate("user1", "wrongPW999")
	if err != nil {
		t.Fatal(err, "authenticating")
	}
	assert.Equal(t, ok, false, "invalid password should be rejected")
	assert.Equal(t, message, "Incorrect password.", "rejection message mismatch")

	ok, message, err = m.Authenticate("nobody", "userPW101")
	if err != nil {
		t.Fatal(err, "authenticating")
	}
	assert.Equal(t, ok, false, "unknown username should be rejected")
	assert.Equal(t, message, "Username does not exist.", "rejection message mismatch")
}

func TestSetStatus(t *testing.T) {
	m, c := newTestManager(t)

	user := mustRegister(t, m, "user1")

	c.Advance(2 * time.Hour)
	if err := m.SetStatus(user.ID, model.StatusOffline); err != nil {
		t.Fatal(err, "setting status")
	}

	got, err := m.Store.UserByID(user.ID)
	if err != nil {
		t.Fatal(err, "getting user")
	}
	assert.Equal(t, got.Status, model.StatusOffline, "status mismatch")
	assert.Equal(t, got.LastActive, "2025-06-15 12:30", "last_active should be touched")
}

func TestUpdateProfile(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	updated, err := m.UpdateProfile(user.ID, ProfileParams{
		Password:   "newerPW202",
		Name:       "First User",
		Gender:     "F",
		Birthday:   "01/01/2000",
		ContactNum: "91234567",
	})
	if err != nil {
		t.Fatal(err, "updating profile")
	}

	assert.Equal(t, updated.Name, "First User", "name mismatch")
	assert.Equal(t, updated.ContactNum, "91234567", "contact number mismatch")

	got, err := m.Store.UserByID(user.ID)
	if err != nil {
		t.Fatal(err, "getting user")
	}
	assert.Equal(t, got.Gender, "F", "gender should be persisted")
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("newerPW202")); err != nil {
		t.Error("new password hash should match the new password")
	}
}

func TestUpdateProfile_Invalid(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	_, err := m.UpdateProfile(user.ID, ProfileParams{Password: "short", Name: "", ContactNum: ""})

	var verr ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	assert.Equal(t, len(verr.Reasons), 3, "every failed field should be reported")

	got, err := m.Store.UserByID(user.ID)
	if err != nil {
		t.Fatal(err, "getting user")
	}
	assert.Equal(t, got.Name, "", "rejected update should not mutate the record")
}

func TestAddRemark_Sanitized(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	updated, err := m.AddRemark(user.ID, `hello <script>alert("hey")</script>world`)
	if err != nil {
		t.Fatal(err, "adding remark")
	}

	if strings.Contains(updated.Remark, "<script>") {
		t.Errorf("markup should be stripped, got %q", updated.Remark)
	}
	if !strings.Contains(updated.Remark, "hello") {
		t.Errorf("text content should survive, got %q", updated.Remark)
	}
}

func TestSendMessage_Empty(t *testing.T) {
	m, _ := newTestManager(t)

	u1 := mustRegister(t, m, "user1")
	u2 := mustRegister(t, m, "user2")

	if _, err := m.SendMessage(u1.ID, u2.ID, "   "); !stderrors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}

	history, err := m.ChatHistory(u1.ID, u2.ID)
	if err != nil {
		t.Fatal(err, "loading history")
	}
	assert.Equal(t, len(history), 0, "no message should be recorded")
}

func TestFriendRequestGuards(t *testing.T) {
	m, _ := newTestManager(t)

	u1 := mustRegister(t, m, "user1")
	u2 := mustRegister(t, m, "user2")

	code, err := m.SendFriendRequest(u1.ID, "user1")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeSelfRequest, "self request code mismatch")

	code, err = m.SendFriendRequest(u1.ID, "nobody")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeNotFound, "unknown user code mismatch")

	code, err = m.SendFriendRequest(u1.ID, "user2")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeOK, "first request code mismatch")

	code, err = m.SendFriendRequest(u1.ID, "user2")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeAlreadySent, "repeat request code mismatch")

	// pending in the opposite direction also counts
	code, err = m.SendFriendRequest(u2.ID, "user1")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeAlreadySent, "reverse request code mismatch")

	if err := m.AcceptRequest(u2.ID, u1.ID); err != nil {
		t.Fatal(err, "accepting request")
	}

	code, err = m.SendFriendRequest(u1.ID, "user2")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeAlreadyFriends, "friends code mismatch")
}

func TestRejectRequest_Idempotent(t *testing.T) {
	m, _ := newTestManager(t)

	u1 := mustRegister(t, m, "user1")
	u2 := mustRegister(t, m, "user2")

	if _, err := m.SendFriendRequest(u1.ID, "user2"); err != nil {
		t.Fatal(err, "sending request")
	}

	if err := m.RejectRequest(u2.ID, u1.ID); err != nil {
		t.Fatal(err, "rejecting request")
	}
	// a second reject is a no-op, not an error
	if err := m.RejectRequest(u2.ID, u1.ID); err != nil {
		t.Fatal(err, "rejecting request again")
	}

	pending, err := m.PendingRequests(u2.ID)
	if err != nil {
		t.Fatal(err, "loading pending requests")
	}
	assert.Equal(t, len(pending), 0, "no request should remain")

	friends, err := m.Friends(u1.ID)
	if err != nil {
		t.Fatal(err, "loading friends")
	}
	assert.Equal(t, len(friends), 0, "no friendship should exist")
}

func TestUnfriend_CascadesChats(t *testing.T) {
	m, _ := newTestManager(t)

	u1 := mustRegister(t, m, "user1")
	u2 := mustRegister(t, m, "user2")
	u3 := mustRegister(t, m, "user3")

	if _, err := m.SendFriendRequest(u1.ID, "user2"); err != nil {
		t.Fatal(err, "sending request")
	}
	if err := m.AcceptRequest(u2.ID, u1.ID); err != nil {
		t.Fatal(err, "accepting request")
	}

	if _, err := m.SendMessage(u1.ID, u2.ID, "hello"); err != nil {
		t.Fatal(err, "sending message")
	}
	if _, err := m.SendMessage(u2.ID, u1.ID, "hi back"); err != nil {
		t.Fatal(err, "sending message")
	}
	if _, err := m.SendMessage(u1.ID, u3.ID, "separate thread"); err != nil {
		t.Fatal(err, "sending message")
	}

	if err := m.Unfriend(u1.ID, u2.ID); err != nil {
		t.Fatal(err, "unfriending")
	}

	history, err := m.ChatHistory(u1.ID, u2.ID)
	if err != nil {
		t.Fatal(err, "loading history")
	}
	assert.Equal(t, len(history), 0, "pair history should be deleted")

	other, err := m.ChatHistory(u1.ID, u3.ID)
	if err != nil {
		t.Fatal(err, "loading other history")
	}
	assert.Equal(t, len(other), 1, "third party history should be untouched")

	friends, err := m.Friends(u1.ID)
	if err != nil {
		t.Fatal(err, "loading friends")
	}
	assert.Equal(t, len(friends), 0, "friendship should be removed")
}

func TestRequestAcceptScenario(t *testing.T) {
	m, c := newTestManager(t)

	u1 := mustRegister(t, m, "user1")
	u2 := mustRegister(t, m, "user2")

	code, err := m.SendFriendRequest(u1.ID, "user2")
	if err != nil {
		t.Fatal(err, "sending request")
	}
	assert.Equal(t, code, store.CodeOK, "request code mismatch")

	if err := m.AcceptRequest(u2.ID, u1.ID); err != nil {
		t.Fatal(err, "accepting request")
	}

	today := c.Now().Format(model.EdgeDateLayout)

	friends, err := m.Friends(u1.ID)
	if err != nil {
		t.Fatal(err, "loading friends")
	}
	assert.Equal(t, len(friends), 1, "friend count mismatch")
	assert.Equal(t, friends[0].User.Username, "user2", "friend username mismatch")
	assert.Equal(t, friends[0].Since, today, "friendship date mismatch")

	reverse, err := m.Friends(u2.ID)
	if err != nil {
		t.Fatal(err, "loading reverse friends")
	}
	assert.Equal(t, len(reverse), 1, "friendship should be symmetric")

	pending, err := m.PendingRequests(u2.ID)
	if err != nil {
		t.Fatal(err, "loading pending requests")
	}
	assert.Equal(t, len(pending), 0, "request should be consumed")

	if _, err := m.SendMessage(u1.ID, u2.ID, "hi"); err != nil {
		t.Fatal(err, "sending message")
	}

	history, err := m.ChatHistory(u1.ID, u2.ID)
	if err != nil {
		t.Fatal(err, "loading history")
	}
	assert.Equal(t, len(history), 1, "history should hold the sole message")
	assert.Equal(t, history[0].Content, "hi", "message content mismatch")
	assert.Equal(t, history[0].Sender, u1.ID, "message sender mismatch")
}

func TestSetDailyMood(t *testing.T) {
	m, c := newTestManager(t)

	user := mustRegister(t, m, "user1")

	if err := m.SetDailyMood(user.ID, "happy"); err != nil {
		t.Fatal(err, "setting mood")
	}
	// same day overwrites
	if err := m.SetDailyMood(user.ID, "tired"); err != nil {
		t.Fatal(err, "overwriting mood")
	}

	c.Advance(24 * time.Hour)
	if err := m.SetDailyMood(user.ID, "excited"); err != nil {
		t.Fatal(err, "setting next day mood")
	}

	entries, err := m.UserMoods(user.ID)
	if err != nil {
		t.Fatal(err, "loading moods")
	}
	assert.Equal(t, len(entries), 2, "entry count mismatch")
	assert.Equal(t, entries[0].Mood, "tired", "first day should hold the overwrite")
	assert.Equal(t, entries[1].Mood, "excited", "second day mismatch")
}

func TestSetDailyMood_Unknown(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	err := m.SetDailyMood(user.ID, "ecstatic")

	var verr ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestLastNDaysMoods(t *testing.T) {
	m, c := newTestManager(t)

	user := mustRegister(t, m, "user1")

	if err := m.SetDailyMood(user.ID, "happy"); err != nil {
		t.Fatal(err, "setting mood")
	}
	c.Advance(48 * time.Hour)
	if err := m.SetDailyMood(user.ID, "sad"); err != nil {
		t.Fatal(err, "setting mood")
	}

	entries, err := m.LastNDaysMoods(user.ID, 3)
	if err != nil {
		t.Fatal(err, "loading moods")
	}

	assert.Equal(t, len(entries), 3, "one entry per day expected")
	assert.Equal(t, entries[0].Date, "2025-06-17", "most recent day first")
	assert.Equal(t, entries[0].Mood, "sad", "recent mood mismatch")
	assert.Equal(t, entries[1].Mood, model.MoodUnknown, "gap day should be unknown")
	assert.Equal(t, entries[2].Mood, "happy", "oldest mood mismatch")
}

func TestMonthlyMoods(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	if err := m.SetDailyMood(user.ID, "neutral"); err != nil {
		t.Fatal(err, "setting mood")
	}

	entries, err := m.MonthlyMoods(user.ID, 2025, time.June)
	if err != nil {
		t.Fatal(err, "loading calendar")
	}

	assert.Equal(t, len(entries), 30, "June should have 30 entries")
	assert.Equal(t, entries[0].Date, "2025-06-01", "calendar should start at day 1")
	assert.Equal(t, entries[14].Mood, "neutral", "recorded day mismatch")
	assert.Equal(t, entries[15].Mood, model.MoodUnknown, "gap day should be unknown")
}

func TestAddPost(t *testing.T) {
	m, _ := newTestManager(t)

	user := mustRegister(t, m, "user1")

	p1, err := m.AddPost(user.ID, strings.NewReader("first-image"), ".png")
	if err != nil {
		t.Fatal(err, "adding post")
	}
	p2, err := m.AddPost(user.ID, strings.NewReader("second-image"), ".png")
	if err != nil {
		t.Fatal(err, "adding post")
	}

	assert.Equal(t, p1.ImagePath, "user1_post1.png", "first image name mismatch")
	assert.Equal(t, p2.ImagePath, "user1_post2.png", "second image name mismatch")
	assert.Equal(t, p1.Datetime, "15/06/2025", "post date mismatch")

	posts, err := m.Posts(user.ID)
	if err != nil {
		t.Fatal(err, "loading posts")
	}
	assert.Equal(t, len(posts), 2, "post count mismatch")
	assert.Equal(t, posts[0].ID, p2.ID, "posts should be newest first")
}
