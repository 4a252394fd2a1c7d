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

// Package consts provides definitions of constants
package consts

var (
	// AmityDirName is the name of the directory containing amity files
	AmityDirName = "amity"
	// ConfigFilename is the name of the config file
	ConfigFilename = "amityrc"
	// StateFilename is the name of the file holding the login state
	StateFilename = "state"
)
