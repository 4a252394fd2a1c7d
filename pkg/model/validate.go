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

package model

import (
	"unicode"

	"github.com/pkg/errors"
)

// ErrDuplicateUsername is an error for a username that is already taken
var ErrDuplicateUsername = errors.New("Username exists")

// ErrPasswordTooShort is an error for a password shorter than 8 characters
var ErrPasswordTooShort = errors.New("Password is too short.")

// ErrPasswordNoUppercase is an error for a password without an uppercase character
var ErrPasswordNoUppercase = errors.New("Password should contain at least one uppercase.")

// ErrPasswordNoNumber is an error for a password without a digit
var ErrPasswordNoNumber = errors.New("Password should contain at least one number.")

// ErrNameEmpty is an error for an empty display name
var ErrNameEmpty = errors.New("Name cannot be empty.")

// ErrContactNumEmpty is an error for an empty contact number
var ErrContactNumEmpty = errors.New("Contact number cannot be empty.")

// MoodLabels is the fixed set of accepted mood values
var MoodLabels = []string{"happy", "sad", "angry", "neutral", "excited", "tired"}

// MoodUnknown is the placeholder label for a date without a recorded mood.
// It is never accepted as input.
const MoodUnknown = "unknown"

// ErrMoodUnknown is an error for a mood value outside the accepted set
var ErrMoodUnknown = errors.New("Unknown mood value")

// ValidateUsername checks a candidate username against the set of
// existing usernames
func ValidateUsername(username string, existing []string) []error {
	var ret []error

	for _, u := range existing {
		if u == username {
			ret = append(ret, ErrDuplicateUsername)
			break
		}
	}

	return ret
}

// hasUppercaseish reports whether any character of the password uppercases
// to a non-empty string. The upstream implementation checked
// `any(char.upper() for char in password)`, which holds for every non-empty
// password regardless of case. The behavior is kept verbatim; see the
// accompanying test for the discrepancy with the presumably intended rule.
func hasUppercaseish(password string) bool {
	for range password {
		return true
	}

	return false
}

func hasDigit(password string) bool {
	for _, c := range password {
		if unicode.IsNumber(c) {
			return true
		}
	}

	return false
}

// ValidatePassword checks a candidate password against the registration
// password policy. At most one failure is reported, matching the
// first-failure-wins rule chain of the original policy.
func ValidatePassword(password string) []error {
	var ret []error

	if len(password) < 8 {
		ret = append(ret, ErrPasswordTooShort)
	} else if !hasUppercaseish(password) {
		ret = append(ret, ErrPasswordNoUppercase)
	} else if !hasDigit(password) {
		ret = append(ret, ErrPasswordNoNumber)
	}

	return ret
}

// ValidateProfileUpdate checks the mutable profile fields before an update
func ValidateProfileUpdate(newPassword, newName, newContactNum string) []error {
	var ret []error

	if len(newPassword) < 8 {
		ret = append(ret, ErrPasswordTooShort)
	}
	if newName == "" {
		ret = append(ret, ErrNameEmpty)
	}
	if newContactNum == "" {
		ret = append(ret, ErrContactNumEmpty)
	}

	return ret
}

// ValidateMood checks that the given label is one of the accepted mood values
func ValidateMood(label string) error {
	for _, l := range MoodLabels {
		if l == label {
			return nil
		}
	}

	return errors.Wrapf(ErrMoodUnknown, "'%s'", label)
}
