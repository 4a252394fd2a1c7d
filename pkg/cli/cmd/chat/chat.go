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

package chat

import (
	"strings"
	"time"

	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// watchInterval is how often the watch subcommand polls for new messages
const watchInterval = 2 * time.Second

// ErrNotAFriend is an error for chatting with a user who is not a friend
var ErrNotAFriend = errors.New("not friends with that user")

var example = `
 * Send a message
 amity chat send user2 hello there

 * Show the chat history
 amity chat history user2

 * Follow the conversation as new messages arrive
 amity chat watch user2`

// NewCmd returns a new chat command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chat",
		Short:   "Chat with friends",
		Example: example,
	}

	cmd.AddCommand(newSendCmd(ctx))
	cmd.AddCommand(newHistoryCmd(ctx))
	cmd.AddCommand(newWatchCmd(ctx))

	return cmd
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

	return client.FriendResp{}, ErrNotAFriend
}

func printMessage(ctx context.AmityCtx, friendUsername string, msg client.ChatResp) {
	if msg.Sender == ctx.UserID {
		log.Plainf("%s: %s\n", log.ColorBlue.Sprint(ctx.Username), msg.Content)
	} else {
		log.Plainf("%s: %s\n", log.ColorGreen.Sprint(friendUsername), msg.Content)
	}
}

func newSendCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "send <username> <message>",
		Short: "Send a message to a friend",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			friend, err := findFriend(ctx, args[0])
			if err == ErrNotAFriend {
				log.Errorf("not friends with %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			content := strings.Join(args[1:], " ")
			if _, err := client.SendMessage(ctx, friend.User.ID, content); err != nil {
				return errors.Wrap(err, "sending message")
			}

			log.Successf("sent to %s\n", args[0])

			return nil
		},
	}
}

func newHistoryCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "history <username>",
		Short: "Show the chat history with a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			friend, err := findFriend(ctx, args[0])
			if err == ErrNotAFriend {
				log.Errorf("not friends with %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			history, err := client.GetChatHistory(ctx, friend.User.ID)
			if err != nil {
				return errors.Wrap(err, "getting chat history")
			}

			if len(history) == 0 {
				log.Plain("no messages yet\n")
				return nil
			}

			for _, msg := range history {
				printMessage(ctx, args[0], msg)
			}

			return nil
		},
	}
}

func newWatchCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <username>",
		Short: "Print new messages as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			friend, err := findFriend(ctx, args[0])
			if err == ErrNotAFriend {
				log.Errorf("not friends with %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			history, err := client.GetChatHistory(ctx, friend.User.ID)
			if err != nil {
				return errors.Wrap(err, "getting chat history")
			}
			for _, msg := range history {
				printMessage(ctx, args[0], msg)
			}

			lastID := 0
			if len(history) > 0 {
				lastID = history[len(history)-1].ID
			}

			for range time.Tick(watchInterval) {
				history, err := client.GetChatHistory(ctx, friend.User.ID)
				if err != nil {
					return errors.Wrap(err, "polling chat history")
				}

				for _, msg := range history {
					if msg.ID <= lastID {
						continue
					}
					printMessage(ctx, args[0], msg)
					lastID = msg.ID
				}
			}

			return nil
		},
	}
}
