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

package friend

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNoPendingRequest is an error for accepting or rejecting a request
// that does not exist
var ErrNoPendingRequest = errors.New("no pending request from that user")

// ErrNotAFriend is an error for removing a user who is not a friend
var ErrNotAFriend = errors.New("not friends with that user")

var example = `
 * List friends
 amity friend ls

 * Send a friend request
 amity friend add user2

 * Accept or reject a pending request
 amity friend accept user2
 amity friend reject user2

 * Remove a friend
 amity friend rm user2`

// NewCmd returns a new friend command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "friend",
		Short:   "Manage friends",
		Example: example,
	}

	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newAddCmd(ctx))
	cmd.AddCommand(newRequestsCmd(ctx))
	cmd.AddCommand(newAcceptCmd(ctx))
	cmd.AddCommand(newRejectCmd(ctx))
	cmd.AddCommand(newRmCmd(ctx))

	return cmd
}

func newLsCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			friends, err := client.GetFriends(ctx)
			if err != nil {
				return errors.Wrap(err, "getting friends")
			}

			if len(friends) == 0 {
				log.Plain("no friends yet\n")
				return nil
			}

			for _, f := range friends {
				log.Plainf("%s (%s) friends since %s\n", f.User.Username, f.User.Status, f.Since)
			}

			return nil
		},
	}
}

func newAddCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "add <username>",
		Short: "Send a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := client.SendFriendRequest(ctx, args[0])
			if err != nil {
				return errors.Wrap(err, "sending friend request")
			}

			switch code {
			case "ok":
				log.Successf("friend request sent to %s\n", args[0])
			case "self_request":
				log.Error("cannot send a friend request to yourself\n")
			case "already_friends":
				log.Errorf("already friends with %s\n", args[0])
			case "already_sent":
				log.Errorf("a request between you and %s is already pending\n", args[0])
			case "not_found":
				log.Errorf("user %s not found\n", args[0])
			default:
				log.Errorf("unexpected outcome %s\n", code)
			}

			return nil
		},
	}
}

func newRequestsCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending friend requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := client.GetFriendRequests(ctx)
			if err != nil {
				return errors.Wrap(err, "getting friend requests")
			}

			if len(requests) == 0 {
				log.Plain("no pending requests\n")
				return nil
			}

			for _, r := range requests {
				log.Plainf("%s sent on %s\n", r.User.Username, r.Date)
			}

			return nil
		},
	}
}

// findRequestSender resolves a pending request by the sender's username
func findRequestSender(ctx context.AmityCtx, username string) (int, error) {
	requests, err := client.GetFriendRequests(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "getting friend requests")
	}

	for _, r := range requests {
		if r.User.Username == username {
			return r.User.ID, nil
		}
	}

	return 0, ErrNoPendingRequest
}

func newAcceptCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <username>",
		Short: "Accept a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			senderID, err := findRequestSender(ctx, args[0])
			if err == ErrNoPendingRequest {
				log.Errorf("no pending request from %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			if err := client.AcceptFriendRequest(ctx, senderID); err != nil {
				return errors.Wrap(err, "accepting friend request")
			}

			log.Successf("now friends with %s\n", args[0])

			return nil
		},
	}
}

func newRejectCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <username>",
		Short: "Reject a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			senderID, err := findRequestSender(ctx, args[0])
			if err == ErrNoPendingRequest {
				log.Errorf("no pending request from %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			if err := client.RejectFriendRequest(ctx, senderID); err != nil {
				return errors.Wrap(err, "rejecting friend request")
			}

			log.Successf("rejected the request from %s\n", args[0])

			return nil
		},
	}
}

// findFriend resolves a friend by username
func findFriend(ctx context.AmityCtx, username string) (int, error) {
	friends, err := client.GetFriends(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "getting friends")
	}

	for _, f := range friends {
		if f.User.Username == username {
			return f.User.ID, nil
		}
	}

	return 0, ErrNotAFriend
}

func newRmCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <username>",
		Short: "Remove a friend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("missing username")
			}

			friendID, err := findFriend(ctx, args[0])
			if err == ErrNotAFriend {
				log.Errorf("not friends with %s\n", args[0])
				return nil
			} else if err != nil {
				return err
			}

			// removal also deletes the chat history with the friend
			ok, err := ui.Confirm("remove friend and delete chat history", false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Plain("cancelled\n")
				return nil
			}

			if err := client.Unfriend(ctx, friendID); err != nil {
				return errors.Wrap(err, "removing friend")
			}

			log.Successf("removed %s from friends\n", args[0])

			return nil
		},
	}
}
