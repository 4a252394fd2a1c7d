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

package whoami

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  amity whoami`

// NewCmd returns a new whoami command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "whoami",
		Short:   "Print the current user",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.AmityCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if !ctx.LoggedIn() {
			log.Error("not logged in\n")
			return nil
		}

		user, err := client.GetMe(ctx)
		if err != nil {
			return errors.Wrap(err, "getting the current user")
		}

		log.Plainf("username: %s\n", user.Username)
		if user.Name != "" {
			log.Plainf("name: %s\n", user.Name)
		}
		log.Plainf("status: %s\n", user.Status)
		if user.Remark != "" {
			log.Plainf("remark: %s\n", user.Remark)
		}
		log.Plainf("last active: %s\n", user.LastActive)

		return nil
	}
}
