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

package session

import (
	"testing"
	"time"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/clock"
)

func TestCreateGet(t *testing.T) {
	c := clock.NewMock()
	c.SetNow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	s := NewStore(c)

	sess, err := s.Create(42)
	if err != nil {
		t.Fatal(err, "creating session")
	}
	if sess.Key == "" {
		t.Fatal("session key should not be empty")
	}

	got, ok := s.Get(sess.Key)
	assert.Equal(t, ok, true, "session should be found")
	assert.Equal(t, got.UserID, 42, "user id mismatch")
}

func TestGet_Unknown(t *testing.T) {
	s := NewStore(clock.NewMock())

	if _, ok := s.Get("no-such-key"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestGet_Expired(t *testing.T) {
	c := clock.NewMock()
	c.SetNow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	s := NewStore(c)

	sess, err := s.Create(42)
	if err != nil {
		t.Fatal(err, "creating session")
	}

	c.Advance(DefaultTTL + time.Minute)

	if _, ok := s.Get(sess.Key); ok {
		t.Error("expired session should not resolve")
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(clock.NewMock())

	sess, err := s.Create(42)
	if err != nil {
		t.Fatal(err, "creating session")
	}

	s.Delete(sess.Key)

	if _, ok := s.Get(sess.Key); ok {
		t.Error("deleted session should not resolve")
	}

	// deleting again is a no-op
	s.Delete(sess.Key)
}
