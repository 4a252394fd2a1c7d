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
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/amity/amity/pkg/clock"
	"github.com/amity/amity/pkg/server/buildinfo"
	"github.com/amity/amity/pkg/server/config"
	"github.com/amity/amity/pkg/server/controllers"
	"github.com/amity/amity/pkg/server/log"
	"github.com/amity/amity/pkg/server/middleware"
	"github.com/amity/amity/pkg/server/presence"
	"github.com/amity/amity/pkg/server/session"
	"github.com/amity/amity/pkg/store/document"
)

func startCmd(args []string) {
	fs := setupFlagSet("start", "amity-server start")

	appEnv := fs.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	webURL := fs.String("webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	backend, dataDir, databaseURL := storeFlags(fs)
	uploadDir := fs.String("uploadDir", "", "Directory for uploaded images (env: UploadDir, default: <dataDir>/uploads)")
	disableRegistration := fs.Bool("disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")

	fs.Parse(args)

	cfg, err := config.New(config.Params{
		AppEnv:              *appEnv,
		Port:                *port,
		WebURL:              *webURL,
		Backend:             *backend,
		DataDir:             *dataDir,
		DatabaseURL:         *databaseURL,
		UploadDir:           *uploadDir,
		DisableRegistration: *disableRegistration,
		LogLevel:            *logLevel,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	log.SetLevel(cfg.LogLevel)

	c := clock.New()
	m, err := initManager(cfg, c)
	if err != nil {
		log.ErrorWrap(err, "initializing")
		os.Exit(1)
	}

	app := controllers.App{
		Manager:             m,
		Sessions:            session.NewStore(c),
		DisableRegistration: cfg.DisableRegistration,
	}

	deps := &middleware.Deps{
		Sessions: app.Sessions,
		Store:    m.Store,
	}
	ctl := controllers.New(&app)
	rc := controllers.RouteConfig{
		Controllers: ctl,
		Routes:      controllers.NewRoutes(deps, ctl, cfg.DisableRegistration),
	}

	r, err := controllers.NewRouter(deps, rc)
	if err != nil {
		log.ErrorWrap(err, "initializing router")
		os.Exit(1)
	}

	if ds, ok := m.Store.(*document.Store); ok {
		w, err := ds.Watch(time.Second, func(filename string) {
			log.WithFields(log.Fields{"document": filename}).Debug("document changed on disk")
		})
		if err != nil {
			log.ErrorWrap(err, "starting document watcher")
			os.Exit(1)
		}
		defer w.Close()
	}

	sweeper := presence.NewSweeper(m.Store, c)
	if err := sweeper.Run(); err != nil {
		log.ErrorWrap(err, "starting presence sweeper")
		os.Exit(1)
	}
	defer sweeper.Stop()

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"port":    cfg.Port,
		"backend": cfg.Backend,
	}).Info("Amity server starting")

	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}
