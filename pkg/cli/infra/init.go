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

// Package infra initializes the runtime context of the command line interface
package infra

import (
	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/config"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/state"
	"github.com/amity/amity/pkg/cli/utils"
	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/dirs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// DefaultAPIEndpoint is the endpoint used when creating a new config file
const DefaultAPIEndpoint = "http://localhost:3001/api"

// RunEFunc is a function type of a cobra command
type RunEFunc func(*cobra.Command, []string) error

func newCtx(versionTag, apiEndpoint string) context.AmityCtx {
	return context.AmityCtx{
		Paths: context.Paths{
			Home:   dirs.Home,
			Config: dirs.ConfigHome,
			Data:   dirs.DataHome,
			Cache:  dirs.CacheHome,
		},
		APIEndpoint: apiEndpoint,
		Version:     versionTag,
		Clock:       clock.New(),
		HTTPClient:  client.NewRateLimitedHTTPClient(),
	}
}

// initConfig creates a config file if one does not exist
func initConfig(ctx context.AmityCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking config file")
	}
	if ok {
		return nil
	}

	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		APIEndpoint:        endpoint,
		EnableUpgradeCheck: true,
	}

	return config.Write(ctx, cf)
}

// Init constructs the runtime context. It creates the amity directories and
// the config file on the first run.
func Init(versionTag, apiEndpoint string) (*context.AmityCtx, error) {
	ctx := newCtx(versionTag, apiEndpoint)

	if err := context.InitAmityDirs(ctx.Paths); err != nil {
		return nil, errors.Wrap(err, "initializing directories")
	}

	if err := initConfig(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "initializing config")
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	ctx.APIEndpoint = cf.APIEndpoint
	ctx.EnableUpgradeCheck = cf.EnableUpgradeCheck

	st, err := state.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading state")
	}

	// drop an expired session so commands prompt for a fresh login
	if st.SessionKey != "" && st.SessionKeyExpiry > ctx.Clock.Now().Unix() {
		ctx.SessionKey = st.SessionKey
		ctx.SessionKeyExpiry = st.SessionKeyExpiry
		ctx.UserID = st.UserID
		ctx.Username = st.Username
	}

	return &ctx, nil
}
