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

package post

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/cli/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * Share an image
 amity post add ./sunset.png

 * List your posts
 amity post ls

 * List a friend's posts
 amity post ls user2`

// NewCmd returns a new post command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Short:   "Share and browse image posts",
		Example: example,
	}

	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))

	return cmd
}

func newAddCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "add <image>",
		Short: "Share an image as a new post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := utils.FileExists(args[0])
			if err != nil {
				return errors.Wrap(err, "checking image file")
			}
			if !ok {
				log.Errorf("no such file: %s\n", args[0])
				return nil
			}

			created, err := client.CreatePost(ctx, args[0])
			if err != nil {
				return errors.Wrap(err, "creating post")
			}

			log.Successf("posted %s\n", created.ImagePath)

			return nil
		},
	}
}

// findFriend resolves a friend by username
func findFriend(ctx context.AmityCtx, username string) (client.FriendResp, error) {
	friends, err := client.GetFriends(ctx)
	if err != nil {
		return client.FriendResp{}, errors.Wrap(err, "getting friends")
	}

	for _, f := range friends {
		if f.User.Username == username {
			return f, nil
		}
	}

	return client.FriendResp{}, errors.Errorf("not friends with %s", username)
}

func newLsCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [username]",
		Short: "List posts, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []client.PostResp
			var err error

			if len(args) == 0 {
				posts, err = client.GetPosts(ctx)
			} else {
				var friend client.FriendResp
				friend, err = findFriend(ctx, args[0])
				if err == nil {
					posts, err = client.GetUserPosts(ctx, friend.User.ID)
				}
			}
			if err != nil {
				return errors.Wrap(err, "getting posts")
			}

			if len(posts) == 0 {
				log.Plain("no posts yet\n")
				return nil
			}

			for _, p := range posts {
				log.Plainf("%s posted on %s\n", p.ImagePath, p.Datetime)
			}

			return nil
		},
	}
}
