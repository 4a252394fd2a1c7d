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

package profile

import (
	"strings"

	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/cli/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * View your profile
 amity profile

 * Update profile fields
 amity profile update --name "Jane Doe" --gender female

 * Set a profile picture
 amity profile update --picture ./me.png

 * Set your remark
 amity profile remark "gone fishing"`

// NewCmd returns a new profile command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   "View and update your profile",
		Example: example,
		RunE:    newViewRun(ctx),
	}

	cmd.AddCommand(newUpdateCmd(ctx))
	cmd.AddCommand(newRemarkCmd(ctx))

	return cmd
}

func newViewRun(ctx context.AmityCtx) infra.RunEFunc {
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
		log.Plainf("name: %s\n", user.Name)
		log.Plainf("gender: %s\n", user.Gender)
		log.Plainf("birthday: %s\n", user.Birthday)
		log.Plainf("contact: %s\n", user.ContactNum)
		log.Plainf("remark: %s\n", user.Remark)

		return nil
	}
}

func newUpdateCmd(ctx context.AmityCtx) *cobra.Command {
	var params client.ProfileParams

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.LoggedIn() {
				log.Error("not logged in\n")
				return nil
			}

			if params.PicturePath != "" {
				ok, err := utils.FileExists(params.PicturePath)
				if err != nil {
					return errors.Wrap(err, "checking picture file")
				}
				if !ok {
					log.Errorf("%s does not exist\n", params.PicturePath)
					return nil
				}
			}

			user, err := client.UpdateProfile(ctx, params)
			if err != nil {
				var httpErr *client.HTTPError
				if errors.As(err, &httpErr) {
					log.Errorf("%s\n", httpErr.Message)
					return nil
				}
				return errors.Wrap(err, "updating profile")
			}

			log.Successf("updated profile for %s\n", user.Username)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Name, "name", "", "display name")
	f.StringVar(&params.Gender, "gender", "", "gender")
	f.StringVar(&params.Birthday, "bday", "", "birthday (DD/MM/YYYY)")
	f.StringVar(&params.ContactNum, "contact", "", "contact email")
	f.StringVar(&params.Password, "password", "", "new password")
	f.StringVar(&params.PicturePath, "picture", "", "path to a profile picture")

	return cmd
}

func newRemarkCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "remark <text>",
		Short: "Set your remark",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.LoggedIn() {
				log.Error("not logged in\n")
				return nil
			}

			remark := strings.Join(args, " ")

			user, err := client.UpdateRemark(ctx, remark)
			if err != nil {
				var httpErr *client.HTTPError
				if errors.As(err, &httpErr) {
					log.Errorf("%s\n", httpErr.Message)
					return nil
				}
				return errors.Wrap(err, "updating remark")
			}

			log.Successf("remark set to %q\n", user.Remark)

			return nil
		},
	}
}
