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

// Package images stores uploaded image files under a single directory
// with collision-avoided names.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store writes image files into Dir
type Store struct {
	Dir string
}

// New returns an image store rooted at the given directory, creating it
// if necessary
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating image directory at %s", dir)
	}

	return &Store{Dir: dir}, nil
}

// resolve returns a filename that does not collide with an existing file,
// appending a numeric suffix before the extension if needed
func (s *Store) resolve(base, ext string) string {
	name := base + ext

	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); os.IsNotExist(err) {
			return name
		}

		name = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
}

// Save writes the image content under a collision-avoided name derived
// from base and ext, and returns the stored filename
func (s *Store) Save(base, ext string, content io.Reader) (string, error) {
	name := s.resolve(base, ext)
	path := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", errors.Wrapf(err, "creating image file at %s", path)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "writing image content")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "closing image file")
	}

	return name, nil
}

// Path returns the absolute location of a stored image
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}
