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

package login

import (
	"net/url"

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
  amity login`

// NewCmd returns a new login command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// getServerDisplayURL derives the base url of the server from the api
// endpoint for display purposes.
func getServerDisplayURL(ctx context.AmityCtx) string {
	u, err := url.Parse(ctx.APIEndpoint)
	if err != nil {
		return ""
	}
	if u.Scheme == "" || u.Host == "" {
		return ""
	}

	u.Path = ""

	return u.String()
}

// Do performs login
func Do(ctx context.AmityCtx, username, password string) error {
	session, err := client.Signin(ctx, username, password)
	if err != nil {
		return err
	}

	return state.Write(ctx, state.State{
		SessionKey:       session.Key,
		SessionKeyExpiry: session.ExpiresAt,
		UserID:           session.User.ID,
		Username:         session.User.Username,
	})
}

func newRun(ctx context.AmityCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if displayURL := getServerDisplayURL(ctx); displayURL != "" {
			log.Infof("logging in to %s\n", displayURL)
		}

		var username, password string
		if err := ui.PromptInput("username", &username); err != nil {
			return errors.Wrap(err, "getting username input")
		}
		if username == "" {
			return errors.New("username is empty")
		}
		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}

		err := Do(ctx, username, password)
		if err == client.ErrInvalidLogin {
			log.Error("wrong credentials\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Success("logged in\n")

		return nil
	}
}
