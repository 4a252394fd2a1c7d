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

// Package sqlstore implements the relational store on top of gorm.
// Primary keys and uniqueness constraints are delegated to the database.
package sqlstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open initializes a database connection. A DSN starting with postgres://
// (or postgresql://) opens a Postgres connection; anything else is treated
// as a path to a SQLite database file.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres connection")
		}

		return db, nil
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating database directory at %s", dir)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite connection")
	}

	return db, nil
}

// InitSchema migrates the database schema to reflect the latest model
// definitions
func InitSchema(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Chat{},
		&Friend{},
		&FriendRequest{},
		&Post{},
		&MoodRow{},
	)
	if err != nil {
		return errors.Wrap(err, "migrating schema")
	}

	return nil
}

// Store is the relational implementation of store.Store
type Store struct {
	db *gorm.DB
}

// New returns a relational store over the given connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
