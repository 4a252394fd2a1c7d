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

// Package manager exposes one operation per user-facing action. Each
// operation validates its input, mutates through the store, and reports
// an outcome. A Manager holds no session state of its own; callers pass
// one around explicitly instead of sharing a global instance.
package manager

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/images"
	"github.com/amity/amity/pkg/mailer"
	"github.com/amity/amity/pkg/store"
)

var (
	// ErrEmptyStore is an error for missing store in the manager configuration
	ErrEmptyStore = errors.New("No store was provided")
	// ErrEmptyClock is an error for missing clock in the manager configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyContent is an error for a blank message
	ErrEmptyContent = errors.New("Message cannot be empty.")
)

// contentPolicy strips markup from user-supplied text before it is persisted
var contentPolicy = bluemonday.StrictPolicy()

// Manager is the domain operations facade over a persistence backend
type Manager struct {
	Store store.Store
	Clock clock.Clock
	// Images receives profile pictures and post uploads. Operations that
	// accept an upload fail without it.
	Images *images.Store
	// EmailBackend sends the welcome email on registration. Optional;
	// registration succeeds without it.
	EmailBackend mailer.Backend
	// EmailFrom is the sender address for outgoing email
	EmailFrom string
	// WebURL appears in outgoing email bodies
	WebURL string
}

// Validate validates the manager configuration
func (m *Manager) Validate() error {
	if m.Store == nil {
		return ErrEmptyStore
	}
	if m.Clock == nil {
		return ErrEmptyClock
	}

	return nil
}

// ValidationError aggregates the human-readable reasons an input was
// rejected. No mutation happens when it is returned.
type ValidationError struct {
	Reasons []error
}

func (e ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		msgs = append(msgs, r.Error())
	}

	return strings.Join(msgs, " ")
}

func sanitize(content string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(content))
}
