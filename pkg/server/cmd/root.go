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

// Package cmd provides the amity-server command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/amity/amity/pkg/server/buildinfo"
)

func versionCmd() {
	fmt.Printf("amity-server-%s\n", buildinfo.Version)
}

func rootCmd() {
	fmt.Printf(`Amity server - a small social network

Usage:
  amity-server [command] [flags]

Available commands:
  start: Start the server (use 'amity-server start --help' for flags)
  user: Manage user accounts (use 'amity-server user' for subcommands)
  version: Print the version
`)
}

// Execute dispatches to the subcommand named by the process arguments.
func Execute() {
	if len(os.Args) < 2 {
		rootCmd()
		return
	}

	switch os.Args[1] {
	case "start":
		startCmd(os.Args[2:])
	case "user":
		userCmd(os.Args[2:])
	case "version":
		versionCmd()
	default:
		fmt.Printf("Unknown command %s\n", os.Args[1])
		rootCmd()
		os.Exit(1)
	}
}
