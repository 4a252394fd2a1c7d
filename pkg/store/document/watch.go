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
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
)

// Watch polls the data directory and invokes onChange with the collection
// filename whenever another session rewrites one of the documents. It
// returns the underlying watcher; the caller stops it with Close.
func (s *Store) Watch(interval time.Duration, onChange func(filename string)) (*watcher.Watcher, error) {
	w := watcher.New()
	w.FilterOps(watcher.Create, watcher.Write, watcher.Move, watcher.Rename)

	if err := w.Add(s.dir); err != nil {
		return nil, errors.Wrapf(err, "watching %s", s.dir)
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				name := filepath.Base(event.Path)
				if filepath.Ext(name) == ".json" {
					onChange(name)
				}
			case <-w.Error:
				// polling continues after transient stat errors
			case <-w.Closed:
				return
			}
		}
	}()

	go func() {
		// Start blocks until Close
		_ = w.Start(interval)
	}()

	return w, nil
}
