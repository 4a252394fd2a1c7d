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
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
)

// AddPost stores the uploaded image and records the post. The post id is
// reserved before the image is written so the filename can carry it; the
// image write and the metadata write are separate steps, and a crash in
// between can leave an image file without a post record.
func (m *Manager) AddPost(userID int, image io.Reader, ext string) (model.Post, error) {
	if m.Images == nil {
		return model.Post{}, errors.New("no image store configured")
	}

	user, err := m.Store.UserByID(userID)
	if err != nil {
		return model.Post{}, errors.Wrap(err, "finding user")
	}

	id, err := m.Store.AllocatePostID()
	if err != nil {
		return model.Post{}, errors.Wrap(err, "allocating post id")
	}

	base := fmt.Sprintf("%s_post%d", user.Username, id)
	name, err := m.Images.Save(base, ext, image)
	if err != nil {
		return model.Post{}, errors.Wrap(err, "saving post image")
	}

	post := model.NewPost(id, userID, name, m.Clock.Now())
	if err := m.Store.CreatePost(post); err != nil {
		return model.Post{}, errors.Wrap(err, "recording post")
	}

	return post, nil
}

// Posts returns the user's posts, newest first
func (m *Manager) Posts(userID int) ([]model.Post, error) {
	posts, err := m.Store.PostsByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading posts")
	}

	return posts, nil
}
