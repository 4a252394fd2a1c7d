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

package upgrade

import (
	gocontext "context"
	"strings"

	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	repoOwner = "amity"
	repoName  = "amity"
)

var example = `
  amity upgrade`

// NewCmd returns a new upgrade command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "upgrade",
		Short:   "Check for a newer release",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// getLatestVersion fetches the tag name of the latest release
func getLatestVersion(ctx gocontext.Context) (string, error) {
	gh := github.NewClient(nil)

	release, _, err := gh.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return "", errors.Wrap(err, "fetching the latest release")
	}

	return strings.TrimPrefix(release.GetTagName(), "v"), nil
}

func newRun(ctx context.AmityCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		latest, err := getLatestVersion(gocontext.Background())
		if err != nil {
			return errors.Wrap(err, "checking for an upgrade")
		}

		current := strings.TrimPrefix(ctx.Version, "v")

		if latest == current {
			log.Successf("you are up to date with %s\n", ctx.Version)
			return nil
		}

		log.Infof("a newer release %s is available (current: %s)\n", latest, current)
		log.Plain("https://github.com/amity/amity/releases\n")

		return nil
	}
}
