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

// Package presence sweeps stale online users back to offline.
package presence

import (
	"time"

	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/server/log"
	"github.com/amity/amity/pkg/store"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// DefaultIdleTimeout is how long a user can stay online without activity
// before the sweeper marks them offline.
const DefaultIdleTimeout = 30 * time.Minute

// Sweeper periodically marks users offline whose last activity is older
// than the idle timeout. A crashed client never sends a logout, so the
// sweeper is what eventually clears its online flag.
type Sweeper struct {
	Store       store.Store
	Clock       clock.Clock
	IdleTimeout time.Duration

	c *cron.Cron
}

// NewSweeper returns a sweeper with the default idle timeout.
func NewSweeper(s store.Store, c clock.Clock) *Sweeper {
	return &Sweeper{
		Store:       s,
		Clock:       c,
		IdleTimeout: DefaultIdleTimeout,
	}
}

// Run starts the sweep schedule in a background goroutine.
func (s *Sweeper) Run() error {
	ch := cron.New()
	if err := ch.AddFunc("@every 5m", func() {
		if err := s.Sweep(); err != nil {
			log.ErrorWrap(err, "sweeping presence")
		}
	}); err != nil {
		return errors.Wrap(err, "scheduling presence sweep")
	}
	ch.Start()
	s.c = ch

	return nil
}

// Stop halts the sweep schedule.
func (s *Sweeper) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

// Sweep performs a single pass. It returns the first error encountered
// after attempting every user.
func (s *Sweeper) Sweep() error {
	users, err := s.Store.Users()
	if err != nil {
		return errors.Wrap(err, "listing users")
	}

	// activity stamps carry no zone, so compare formatted wall-clock
	// values. The layout orders lexicographically.
	cutoff := s.Clock.Now().Add(-s.IdleTimeout).Format(model.LastActiveLayout)

	var stale []model.User
	for _, user := range users {
		if user.Status != model.StatusOnline {
			continue
		}
		if user.LastActive < cutoff {
			user.Status = model.StatusOffline
			stale = append(stale, user)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	if err := s.Store.SaveUsers(stale...); err != nil {
		return errors.Wrap(err, "saving swept users")
	}

	log.WithFields(log.Fields{
		"count": len(stale),
	}).Info("marked idle users offline")

	return nil
}
