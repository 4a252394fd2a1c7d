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
	"io"
	"os"

	"github.com/amity/amity/pkg/manager"
	"github.com/amity/amity/pkg/prompt"
	"github.com/amity/amity/pkg/server/log"
	"github.com/amity/amity/pkg/store"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, question string, optimistic bool) (bool, error) {
	message := prompt.FormatQuestion(question, optimistic)
	fmt.Print(message + " ")

	confirmed, err := prompt.ReadYesNo(r, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "reading stdin")
	}

	return confirmed, nil
}

func userCreateCmd(args []string) {
	fs := setupFlagSet("create", "amity-server user create")

	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "User password (required)")
	backend, dataDir, databaseURL := storeFlags(fs)

	fs.Parse(args)

	requireString(fs, *username, "username")
	requireString(fs, *password, "password")

	m := setupManager(fs, *backend, *dataDir, *databaseURL)

	user, err := m.Register(*username, *password)
	if err != nil {
		var verr manager.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("Error: %s\n", verr.Error())
			os.Exit(1)
		}
		log.ErrorWrap(err, "creating user")
		os.Exit(1)
	}

	fmt.Printf("User created successfully\n")
	fmt.Printf("Username: %s\n", user.Username)
}

func userResetPasswordCmd(args []string, stdin io.Reader) {
	fs := setupFlagSet("reset-password", "amity-server user reset-password")

	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "New password (required)")
	backend, dataDir, databaseURL := storeFlags(fs)

	fs.Parse(args)

	requireString(fs, *username, "username")
	requireString(fs, *password, "password")

	m := setupManager(fs, *backend, *dataDir, *databaseURL)

	user, err := m.Store.UserByUsername(*username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("Error: user %s not found\n", *username)
		} else {
			log.ErrorWrap(err, "finding user")
		}
		os.Exit(1)
	}

	ok, err := confirm(stdin, fmt.Sprintf("Reset password for %s?", *username), false)
	if err != nil {
		log.ErrorWrap(err, "getting confirmation")
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Aborted by user")
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.ErrorWrap(err, "hashing password")
		os.Exit(1)
	}

	user.Password = string(hash)
	if err := m.Store.SaveUsers(user); err != nil {
		log.ErrorWrap(err, "updating password")
		os.Exit(1)
	}

	fmt.Printf("Password reset successfully\n")
	fmt.Printf("Username: %s\n", *username)
}

func userCmd(args []string) {
	if len(args) < 1 {
		fmt.Println(`Usage:
  amity-server user [command]

Available commands:
  create: Create a new user
  reset-password: Reset a user's password`)
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := []string{}
	if len(args) > 1 {
		subArgs = args[1:]
	}

	switch subcommand {
	case "create":
		userCreateCmd(subArgs)
	case "reset-password":
		userResetPasswordCmd(subArgs, os.Stdin)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		fmt.Println(`Available commands:
  create: Create a new user
  reset-password: Reset a user's password`)
		os.Exit(1)
	}
}
