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

// Package document implements the file-backed store. Each collection lives
// in one JSON document that is lock-guarded and atomically rewritten.
// Sessions in separate processes may hold stale in-memory copies; every
// persist therefore re-reads the on-disk document and reconciles it with
// the session's mutations before writing.
package document

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

// Collection filenames inside the data directory
const (
	UserFilename = "user.json"
	ChatFilename = "chat.json"
	PostFilename = "post.json"
	MoodFilename = "mood.json"
)

const (
	// DefaultLockTimeout is the bounded wait for the advisory document lock
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay   = 50 * time.Millisecond
	corruptReadTries = 3
	corruptReadDelay = 50 * time.Millisecond
)

type userDocument struct {
	Users      []model.User `json:"users"`
	NextUserID int          `json:"next_user_id"`
}

type chatDocument struct {
	Chats      []model.Chat `json:"chats"`
	NextChatID int          `json:"next_chat_id"`
}

type postDocument struct {
	Posts      []model.Post `json:"posts"`
	NextPostID int          `json:"next_post_id"`
}

type moodDocument struct {
	Moods []model.Mood `json:"moods"`
}

// Store is the document-backed implementation of store.Store
type Store struct {
	dir         string
	lockTimeout time.Duration
}

// Options configures a document store
type Options struct {
	// LockTimeout bounds the wait for the per-document advisory lock.
	// Zero means DefaultLockTimeout.
	LockTimeout time.Duration
}

// New returns a document store rooted at the given data directory,
// creating the directory if needed
func New(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating data directory at %s", dir)
	}

	timeout := opts.LockTimeout
	if timeout == 0 {
		timeout = DefaultLockTimeout
	}

	return &Store{dir: dir, lockTimeout: timeout}, nil
}

// Dir returns the data directory the store operates on
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// lock acquires the advisory lock for the given document with a bounded
// wait and returns a release function
func (s *Store) lock(path string) (func(), error) {
	fl := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, errors.Wrapf(err, "locking %s", path)
	}
	if !ok {
		return nil, errors.Wrapf(store.ErrLockTimeout, "locking %s", path)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			// the lock file is advisory; a failed unlock only delays
			// other sessions until the process exits
			_ = err
		}
	}, nil
}

// readDocument reads and decodes the document at the given path into dest.
// A missing file leaves dest at its zero value. A file that fails to decode
// is re-read a bounded number of times, in case a concurrent process was
// caught mid-write, before the read fails with store.ErrCorrupt.
func readDocument(path string, dest interface{}) error {
	var lastErr error

	for attempt := 0; attempt < corruptReadTries; attempt++ {
		if attempt > 0 {
			time.Sleep(corruptReadDelay)
		}

		b, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}

		if err := json.Unmarshal(b, dest); err != nil {
			lastErr = err
			continue
		}

		return nil
	}

	return errors.Wrapf(store.ErrCorrupt, "decoding %s: %v", path, lastErr)
}

// writeDocument atomically replaces the document at the given path:
// the content goes to a temp file in the same directory, is flushed to
// disk, and is renamed over the original.
func writeDocument(path string, doc interface{}) error {
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshalling document")
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := f.Name()

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "writing temp file")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "flushing temp file to disk")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "setting permission on temp file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "replacing %s", path)
	}

	return nil
}

// updateUsers runs fn on the freshly read user document under its lock and
// writes the result back atomically
func (s *Store) updateUsers(fn func(doc *userDocument) error) error {
	path := s.path(UserFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc userDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}
	if doc.NextUserID == 0 {
		doc.NextUserID = 1
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return writeDocument(path, doc)
}

// viewUsers runs fn on the freshly read user document under its lock
// without writing anything back
func (s *Store) viewUsers(fn func(doc userDocument) error) error {
	path := s.path(UserFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc userDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}

	return fn(doc)
}

func (s *Store) updateChats(fn func(doc *chatDocument) error) error {
	path := s.path(ChatFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc chatDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}
	if doc.NextChatID == 0 {
		doc.NextChatID = 1
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return writeDocument(path, doc)
}

func (s *Store) viewChats(fn func(doc chatDocument) error) error {
	path := s.path(ChatFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc chatDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}

	return fn(doc)
}

func (s *Store) updatePosts(fn func(doc *postDocument) error) error {
	path := s.path(PostFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc postDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}
	if doc.NextPostID == 0 {
		doc.NextPostID = 1
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return writeDocument(path, doc)
}

func (s *Store) viewPosts(fn func(doc postDocument) error) error {
	path := s.path(PostFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc postDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}

	return fn(doc)
}

func (s *Store) updateMoods(fn func(doc *moodDocument) error) error {
	path := s.path(MoodFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc moodDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return writeDocument(path, doc)
}

func (s *Store) viewMoods(fn func(doc moodDocument) error) error {
	path := s.path(MoodFilename)

	release, err := s.lock(path)
	if err != nil {
		return err
	}
	defer release()

	var doc moodDocument
	if err := readDocument(path, &doc); err != nil {
		return err
	}

	return fn(doc)
}
