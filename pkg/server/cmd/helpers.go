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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/images"
	"github.com/amity/amity/pkg/mailer"
	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/server/config"
	"github.com/amity/amity/pkg/server/log"
	"github.com/amity/amity/pkg/store"
	"github.com/amity/amity/pkg/store/document"
	"github.com/amity/amity/pkg/store/sqlstore"
	"github.com/pkg/errors"
)

func initStore(cfg config.Config) (store.Store, error) {
	if cfg.Backend == config.BackendSQL {
		db, err := sqlstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		if err := sqlstore.InitSchema(db); err != nil {
			return nil, errors.Wrap(err, "initializing schema")
		}

		return sqlstore.New(db), nil
	}

	s, err := document.New(cfg.DataDir, document.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "initializing document store")
	}

	return s, nil
}

func getEmailBackend(cfg config.Config) mailer.Backend {
	backend, err := mailer.NewDefaultBackend()
	if err != nil {
		if cfg.IsProd() {
			log.Debug("SMTP not configured, welcome emails disabled")
			return nil
		}

		log.Debug("SMTP not configured, using StdoutBackend for emails")
		return mailer.NewStdoutBackend()
	}

	log.Debug("Email backend configured")
	return backend
}

func initManager(cfg config.Config, c clock.Clock) (*manager.Manager, error) {
	s, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	imgs, err := images.New(cfg.UploadDir)
	if err != nil {
		return nil, errors.Wrap(err, "initializing image store")
	}

	m := &manager.Manager{
		Store:        s,
		Clock:        c,
		Images:       imgs,
		EmailBackend: getEmailBackend(cfg),
		EmailFrom:    cfg.EmailFrom,
		WebURL:       cfg.WebURL,
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating manager")
	}

	return m, nil
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// storeFlags registers the storage flags shared by every subcommand
func storeFlags(fs *flag.FlagSet) (backend, dataDir, databaseURL *string) {
	backend = fs.String("backend", "", "Storage backend: document or sql (env: Backend, default: document)")
	dataDir = fs.String("dataDir", "", "Directory for the document store (env: DataDir, default: $XDG_DATA_HOME/amity)")
	databaseURL = fs.String("databaseUrl", "", "Database connection string for the sql backend (env: DatabaseURL)")
	return backend, dataDir, databaseURL
}

// requireString validates that a required string flag is not empty
func requireString(fs *flag.FlagSet, value, fieldName string) {
	if value == "" {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

// setupManager creates config from the storage flags and initializes a manager
func setupManager(fs *flag.FlagSet, backend, dataDir, databaseURL string) *manager.Manager {
	cfg, err := config.New(config.Params{
		Backend:     backend,
		DataDir:     dataDir,
		DatabaseURL: databaseURL,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	m, err := initManager(cfg, clock.New())
	if err != nil {
		log.ErrorWrap(err, "initializing")
		os.Exit(1)
	}

	return m
}
