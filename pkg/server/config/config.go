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

package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/amity/amity/pkg/dirs"
	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"

	// BackendDocument stores all data in a single JSON document on disk.
	BackendDocument = "document"
	// BackendSQL stores data in a relational database.
	BackendSQL = "sql"

	// DefaultDataDirName is the default directory name for Amity data
	DefaultDataDirName = "amity"
)

var (
	// DefaultDataDir is the default directory for the document store and uploads
	DefaultDataDir = filepath.Join(dirs.DataHome, DefaultDataDirName)
)

var (
	// ErrBackendInvalid is an error for a configuration with an unknown storage backend
	ErrBackendInvalid = errors.New("Invalid Backend")
	// ErrDataDirMissing is an error for an incomplete configuration missing the data directory
	ErrDataDirMissing = errors.New("DataDir is empty")
	// ErrDatabaseURLMissing is an error for a sql backend without a connection string
	ErrDatabaseURLMissing = errors.New("DatabaseURL is empty")
	// ErrWebURLInvalid is an error for an incomplete configuration with invalid web url
	ErrWebURLInvalid = errors.New("Invalid WebURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
)

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv              string
	WebURL              string
	DisableRegistration bool
	Port                string
	Backend             string
	DataDir             string
	DatabaseURL         string
	UploadDir           string
	EmailFrom           string
	LogLevel            string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv              string
	Port                string
	WebURL              string
	Backend             string
	DataDir             string
	DatabaseURL         string
	UploadDir           string
	EmailFrom           string
	DisableRegistration bool
	LogLevel            string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	dataDir := getOrEnv(p.DataDir, "DataDir", DefaultDataDir)

	c := Config{
		AppEnv:              getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:                getOrEnv(p.Port, "PORT", "3001"),
		WebURL:              getOrEnv(p.WebURL, "WebURL", "http://localhost:3001"),
		Backend:             getOrEnv(p.Backend, "Backend", BackendDocument),
		DataDir:             dataDir,
		DatabaseURL:         getOrEnv(p.DatabaseURL, "DatabaseURL", ""),
		UploadDir:           getOrEnv(p.UploadDir, "UploadDir", filepath.Join(dataDir, "uploads")),
		EmailFrom:           getOrEnv(p.EmailFrom, "EmailFrom", "noreply@getamity.com"),
		DisableRegistration: p.DisableRegistration || readBoolEnv("DisableRegistration"),
		LogLevel:            getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}

	switch c.Backend {
	case BackendDocument:
		if c.DataDir == "" {
			return ErrDataDirMissing
		}
	case BackendSQL:
		if c.DatabaseURL == "" {
			return ErrDatabaseURLMissing
		}
	default:
		return errors.Wrapf(ErrBackendInvalid, "'%s'", c.Backend)
	}

	return nil
}
