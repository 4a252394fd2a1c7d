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

package manager

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/amity/amity/pkg/mailer"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

// Register validates the credentials, creates the user, and returns the
// stored record. The password is stored as a bcrypt hash.
func (m *Manager) Register(username, password string) (model.User, error) {
	existing, err := m.Store.Users()
	if err != nil {
		return model.User{}, errors.Wrap(err, "loading users")
	}

	usernames := make([]string, 0, len(existing))
	for _, u := range existing {
		usernames = append(usernames, u.Username)
	}

	var reasons []error
	reasons = append(reasons, model.ValidateUsername(username, usernames)...)
	reasons = append(reasons, model.ValidatePassword(password)...)
	if len(reasons) > 0 {
		return model.User{}, ValidationError{Reasons: reasons}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hashing password")
	}

	user := model.NewUser(0, username, string(hashed), m.Clock.Now())
	created, err := m.Store.CreateUser(user)
	if err != nil {
		return model.User{}, errors.Wrap(err, "creating user")
	}

	m.sendWelcomeEmail(created)

	return created, nil
}

// sendWelcomeEmail delivers the welcome email through the configured
// backend. Delivery is best effort; registration has already committed.
func (m *Manager) sendWelcomeEmail(user model.User) {
	if m.EmailBackend == nil || user.ContactNum == "" {
		return
	}

	data := mailer.WelcomeTmplData{
		Username: user.Username,
		WebURL:   m.WebURL,
	}
	// ContactNum doubles as the registration contact address
	m.EmailBackend.SendEmail(mailer.EmailTypeWelcome, m.EmailFrom, []string{user.ContactNum}, data)
}

// Authenticate checks the credentials. The boolean reports whether they
// are valid; the message explains a rejection to the caller. The error
// return is reserved for store failures.
func (m *Manager) Authenticate(username, password string) (bool, string, error) {
	user, err := m.Store.UserByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return false, "Username does not exist.", nil
	} else if err != nil {
		return false, "", errors.Wrap(err, "finding user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return false, "Incorrect password.", nil
	}

	return true, "", nil
}

// SetStatus records the user's presence and touches last_active
func (m *Manager) SetStatus(userID int, status string) error {
	user, err := m.Store.UserByID(userID)
	if err != nil {
		return errors.Wrap(err, "finding user")
	}

	user.Status = status
	user.LastActive = m.Clock.Now().Format(model.LastActiveLayout)

	if err := m.Store.SaveUsers(user); err != nil {
		return errors.Wrap(err, "saving user")
	}

	return nil
}

// ProfileParams carries the mutable profile fields for an update. A nil
// Picture leaves the current profile picture in place.
type ProfileParams struct {
	Password   string
	Name       string
	Gender     string
	Birthday   string
	ContactNum string
	Picture    io.Reader
	PictureExt string
}

// UpdateProfile validates and applies a full profile update, returning the
// updated record. The working copy is only persisted after validation
// passes, so a rejected update leaves the stored record untouched.
func (m *Manager) UpdateProfile(userID int, params ProfileParams) (model.User, error) {
	if reasons := model.ValidateProfileUpdate(params.Password, params.Name, params.ContactNum); len(reasons) > 0 {
		return model.User{}, ValidationError{Reasons: reasons}
	}

	user, err := m.Store.UserByID(userID)
	if err != nil {
		return model.User{}, errors.Wrap(err, "finding user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hashing password")
	}

	user.Password = string(hashed)
	user.Name = sanitize(params.Name)
	user.Gender = params.Gender
	user.Birthday = params.Birthday
	user.ContactNum = params.ContactNum

	if params.Picture != nil {
		if m.Images == nil {
			return model.User{}, errors.New("no image store configured")
		}

		name, err := m.Images.Save(strconv.Itoa(userID), params.PictureExt, params.Picture)
		if err != nil {
			return model.User{}, errors.Wrap(err, "saving profile picture")
		}
		user.ProfilePic = name
	}

	if err := m.Store.SaveUsers(user); err != nil {
		return model.User{}, errors.Wrap(err, "saving user")
	}

	return user, nil
}

// AddRemark sets the free-form remark shown on the user's profile
func (m *Manager) AddRemark(userID int, remark string) (model.User, error) {
	user, err := m.Store.UserByID(userID)
	if err != nil {
		return model.User{}, errors.Wrap(err, "finding user")
	}

	user.Remark = sanitize(remark)

	if err := m.Store.SaveUsers(user); err != nil {
		return model.User{}, errors.Wrap(err, "saving user")
	}

	return user, nil
}
