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

package main

import (
	"os"

	"github.com/amity/amity/pkg/cli/infra"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/pkg/errors"

	// commands
	"github.com/amity/amity/pkg/cli/cmd/chat"
	"github.com/amity/amity/pkg/cli/cmd/friend"
	"github.com/amity/amity/pkg/cli/cmd/login"
	"github.com/amity/amity/pkg/cli/cmd/logout"
	"github.com/amity/amity/pkg/cli/cmd/mood"
	"github.com/amity/amity/pkg/cli/cmd/post"
	"github.com/amity/amity/pkg/cli/cmd/profile"
	"github.com/amity/amity/pkg/cli/cmd/register"
	"github.com/amity/amity/pkg/cli/cmd/root"
	"github.com/amity/amity/pkg/cli/cmd/upgrade"
	"github.com/amity/amity/pkg/cli/cmd/version"
	"github.com/amity/amity/pkg/cli/cmd/whoami"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

func main() {
	ctx, err := infra.Init(versionTag, apiEndpoint)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}

	root.Register(register.NewCmd(*ctx))
	root.Register(login.NewCmd(*ctx))
	root.Register(logout.NewCmd(*ctx))
	root.Register(whoami.NewCmd(*ctx))
	root.Register(profile.NewCmd(*ctx))
	root.Register(friend.NewCmd(*ctx))
	root.Register(chat.NewCmd(*ctx))
	root.Register(mood.NewCmd(*ctx))
	root.Register(post.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))
	root.Register(upgrade.NewCmd(*ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
