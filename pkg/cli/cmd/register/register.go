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

package register

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/cli/state"
	"github.com/amity/amity/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  amity register`

// NewCmd returns a new register command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and log in",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.AmityCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var username, password, passwordConfirm string
		if err := ui.PromptInput("username", &username); err != nil {
			return errors.Wrap(err, "getting username input")
		}
		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
		if err := ui.PromptPassword("confirm password", &passwordConfirm); err != nil {
			return errors.Wrap(err, "getting password confirmation input")
		}

		if password != passwordConfirm {
			log.Error("passwords do not match\n")
			return nil
		}

		user, err := client.Register(ctx, username, password)
		if err != nil {
			var httpErr *client.HTTPError
			if errors.As(err, &httpErr) {
				log.Errorf("%s\n", httpErr.Message)
				return nil
			}

			return errors.Wrap(err, "registering")
		}

		// log in right away so the account is ready to use
		session, err := client.Signin(ctx, username, password)
		if err != nil {
			return errors.Wrap(err, "logging in")
		}

		err = state.Write(ctx, state.State{
			SessionKey:       session.Key,
			SessionKeyExpiry: session.ExpiresAt,
			UserID:           session.User.ID,
			Username:         session.User.Username,
		})
		if err != nil {
			return errors.Wrap(err, "saving login state")
		}

		log.Successf("welcome, %s\n", user.Username)

		return nil
	}
}
