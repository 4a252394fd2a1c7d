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

package logout

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/cli/state"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is an error for logging out when not logged in
var ErrNotLoggedIn = errors.New("not logged in")

var example = `
  amity logout`

// NewCmd returns a new logout command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "Logout from the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// Do performs logout
func Do(ctx context.AmityCtx) error {
	if !ctx.LoggedIn() {
		return ErrNotLoggedIn
	}

	if err := client.Signout(ctx); err != nil {
		return errors.Wrap(err, "requesting logout")
	}

	if err := state.Clear(ctx); err != nil {
		return errors.Wrap(err, "clearing login state")
	}

	return nil
}

func newRun(ctx context.AmityCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		err := Do(ctx)
		if err == ErrNotLoggedIn {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}
