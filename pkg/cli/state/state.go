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

// Package state persists the login state between command invocations
package state

import (
	"os"
	"path/filepath"

	"github.com/amity/amity/pkg/cli/consts"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// State holds the persisted login state
type State struct {
	SessionKey       string `yaml:"sessionKey"`
	SessionKeyExpiry int64  `yaml:"sessionKeyExpiry"`
	UserID           int    `yaml:"userId"`
	Username         string `yaml:"username"`
}

// GetPath returns the path to the state file
func GetPath(ctx context.AmityCtx) string {
	return filepath.Join(ctx.Paths.Data, consts.AmityDirName, consts.StateFilename)
}

// Read reads the state file. A missing file yields a zero state.
func Read(ctx context.AmityCtx) (State, error) {
	var ret State

	b, err := os.ReadFile(GetPath(ctx))
	if os.IsNotExist(err) {
		return ret, nil
	} else if err != nil {
		return ret, errors.Wrap(err, "reading state file")
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrap(err, "unmarshalling state")
	}

	return ret, nil
}

// Write writes the state to the state file. The file holds a session key
// and is therefore not group or world readable.
func Write(ctx context.AmityCtx, s State) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshalling state into YAML")
	}

	if err := os.WriteFile(GetPath(ctx), b, 0600); err != nil {
		return errors.Wrap(err, "writing the state file")
	}

	return nil
}

// Clear removes the persisted login state.
func Clear(ctx context.AmityCtx) error {
	err := os.Remove(GetPath(ctx))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
