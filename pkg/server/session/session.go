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

// Package session tracks logged-in users. Sessions live in process memory
// and do not survive a restart; clients log in again.
package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/server/helpers"
)

// DefaultTTL is how long a session stays valid without a new login
const DefaultTTL = 14 * 24 * time.Hour

// Session represents a logged-in user
type Session struct {
	Key       string
	UserID    int
	ExpiresAt time.Time
}

// Store holds the active sessions
type Store struct {
	mu       sync.RWMutex
	clock    clock.Clock
	ttl      time.Duration
	sessions map[string]Session
}

// NewStore returns an empty session store
func NewStore(c clock.Clock) *Store {
	return &Store{
		clock:    c,
		ttl:      DefaultTTL,
		sessions: make(map[string]Session),
	}
}

// Create registers a new session for the user and returns it
func (s *Store) Create(userID int) (Session, error) {
	key, err := helpers.GenUUID()
	if err != nil {
		return Session{}, errors.Wrap(err, "generating session key")
	}

	sess := Session{
		Key:       key,
		UserID:    userID,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[key] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session for the key. An expired session is treated as
// absent and dropped.
func (s *Store) Get(key string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}

	if sess.ExpiresAt.Before(s.clock.Now()) {
		s.Delete(key)
		return Session{}, false
	}

	return sess, true
}

// Delete removes the session for the key, if present
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
}
