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

package sqlstore

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

var _ store.Store = (*Store)(nil)

func (s *Store) edgesFor(userID int) ([]Friend, []FriendRequest, error) {
	var friends []Friend
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&friends).Error; err != nil {
		return nil, nil, errors.Wrap(err, "finding friend edges")
	}

	var requests []FriendRequest
	if err := s.db.Where("receiver_id = ?", userID).Order("id").Find(&requests).Error; err != nil {
		return nil, nil, errors.Wrap(err, "finding pending requests")
	}

	return friends, requests, nil
}

// Users implements store.Store
func (s *Store) Users() ([]model.User, error) {
	var rows []User
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "finding users")
	}

	ret := make([]model.User, 0, len(rows))
	for _, row := range rows {
		friends, requests, err := s.edgesFor(row.ID)
		if err != nil {
			return nil, err
		}
		ret = append(ret, toModelUser(row, friends, requests))
	}

	return ret, nil
}

// UserByID implements store.Store
func (s *Store) UserByID(id int) (model.User, error) {
	var row User
	err := s.db.Where("id = ?", id).First(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user %d", id)
	} else if err != nil {
		return model.User{}, errors.Wrap(err, "finding user")
	}

	friends, requests, err := s.edgesFor(row.ID)
	if err != nil {
		return model.User{}, err
	}

	return toModelUser(row, friends, requests), nil
}

// UserByUsername implements store.Store
func (s *Store) UserByUsername(username string) (model.User, error) {
	var row User
	err := s.db.Where("username = ?", username).First(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user '%s'", username)
	} else if err != nil {
		return model.User{}, errors.Wrap(err, "finding user")
	}

	friends, requests, err := s.edgesFor(row.ID)
	if err != nil {
		return model.User{}, err
	}

	return toModelUser(row, friends, requests), nil
}

// CreateUser implements store.Store. The primary key is assigned by the
// database and the username uniqueness is enforced by its constraint.
func (s *Store) CreateUser(user model.User) (model.User, error) {
	var count int64
	if err := s.db.Model(&User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return model.User{}, errors.Wrap(err, "counting username")
	}
	if count > 0 {
		return model.User{}, model.ErrDuplicateUsername
	}

	row := fromModelUser(user)
	row.ID = 0
	if err := s.db.Create(&row).Error; err != nil {
		return model.User{}, errors.Wrap(err, "inserting user")
	}

	user.ID = row.ID

	return user, nil
}

// SaveUsers implements store.Store. Only the row fields are written; the
// relationship tables are maintained by their own operations.
func (s *Store) SaveUsers(users ...model.User) error {
	for _, u := range users {
		row := fromModelUser(u)
		if err := s.db.Model(&User{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
			"password":    row.Password,
			"name":        row.Name,
			"gender":      row.Gender,
			"bday":        row.Bday,
			"contact_num": row.ContactNum,
			"profile_pic": row.ProfilePic,
			"status":      row.Status,
			"last_active": row.LastActive,
			"remark":      row.Remark,
		}).Error; err != nil {
			return errors.Wrapf(err, "updating user %d", row.ID)
		}
	}

	return nil
}

// AddFriendRequest implements store.Store. The pair constraint makes a
// duplicate insert a no-op.
func (s *Store) AddFriendRequest(senderID, receiverID int, date string) error {
	req := FriendRequest{SenderID: senderID, ReceiverID: receiverID, ReqDate: date}

	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&req).Error
	if err != nil {
		return errors.Wrap(err, "inserting friend request")
	}

	return nil
}

// RemoveFriendRequest implements store.Store
func (s *Store) RemoveFriendRequest(senderID, receiverID int) error {
	err := s.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&FriendRequest{}).Error
	if err != nil {
		return errors.Wrap(err, "deleting friend request")
	}

	return nil
}

// AcceptFriendRequest implements store.Store. Both symmetric edges and the
// request removal commit in one transaction.
func (s *Store) AcceptFriendRequest(receiverID, senderID int, date string) error {
	tx := s.db.Begin()

	edges := []Friend{
		{UserID: receiverID, FriendID: senderID, SinceDate: date},
		{UserID: senderID, FriendID: receiverID, SinceDate: date},
	}
	for _, edge := range edges {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			tx.Rollback()
			return errors.Wrap(err, "inserting friend edge")
		}
	}

	err := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&FriendRequest{}).Error
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting friend request")
	}

	return errors.Wrap(tx.Commit().Error, "committing")
}

// RemoveFriendship implements store.Store
func (s *Store) RemoveFriendship(userID, friendID int) error {
	err := s.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID,
	).Delete(&Friend{}).Error
	if err != nil {
		return errors.Wrap(err, "deleting friend edges")
	}

	return nil
}

// CreateChat implements store.Store
func (s *Store) CreateChat(sender, receiver int, content string) (model.Chat, error) {
	row := Chat{Sender: sender, Receiver: receiver, Content: content}
	if err := s.db.Create(&row).Error; err != nil {
		return model.Chat{}, errors.Wrap(err, "inserting chat")
	}

	return model.NewChat(row.ID, sender, receiver, content), nil
}

// ChatsBetween implements store.Store
func (s *Store) ChatsBetween(userID, friendID int) ([]model.Chat, error) {
	var rows []Chat
	err := s.db.Where(
		"(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
		userID, friendID, friendID, userID,
	).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "finding chats")
	}

	ret := make([]model.Chat, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, model.NewChat(row.ID, row.Sender, row.Receiver, row.Content))
	}

	return ret, nil
}

// DeleteChatsBetween implements store.Store
func (s *Store) DeleteChatsBetween(userID, friendID int) error {
	err := s.db.Where(
		"(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
		userID, friendID, friendID, userID,
	).Delete(&Chat{}).Error
	if err != nil {
		return errors.Wrap(err, "deleting chats")
	}

	return nil
}

// AllocatePostID implements store.Store. A placeholder row reserves the
// auto-assigned id; CreatePost fills it in.
func (s *Store) AllocatePostID() (int, error) {
	row := Post{}
	if err := s.db.Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "reserving post id")
	}

	return row.ID, nil
}

// CreatePost implements store.Store
func (s *Store) CreatePost(post model.Post) error {
	err := s.db.Model(&Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"user_id":    post.UserID,
		"image_path": post.ImagePath,
		"dt":         post.Datetime,
	}).Error
	if err != nil {
		return errors.Wrapf(err, "updating post %d", post.ID)
	}

	return nil
}

// PostsByUser implements store.Store
func (s *Store) PostsByUser(userID int) ([]model.Post, error) {
	var rows []Post
	err := s.db.Where("user_id = ? AND image_path <> ''", userID).Order("id DESC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "finding posts")
	}

	ret := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, model.Post{ID: row.ID, UserID: row.UserID, ImagePath: row.ImagePath, Datetime: row.Dt})
	}

	return ret, nil
}

// SetMood implements store.Store as an upsert on (user_id, mood_date)
func (s *Store) SetMood(userID int, date, label string) error {
	row := MoodRow{UserID: userID, MoodDate: date, MoodValue: label}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "mood_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood_value"}),
	}).Create(&row).Error
	if err != nil {
		return errors.Wrap(err, "upserting mood")
	}

	return nil
}

// MoodsByUser implements store.Store
func (s *Store) MoodsByUser(userID int) (model.Mood, error) {
	var rows []MoodRow
	err := s.db.Where("user_id = ?", userID).Order("mood_date").Find(&rows).Error
	if err != nil {
		return model.Mood{}, errors.Wrap(err, "finding moods")
	}

	ret := model.NewMood(userID)
	for _, row := range rows {
		ret.Moods = append(ret.Moods, model.MoodEntry{Date: row.MoodDate, Mood: row.MoodValue})
	}

	return ret, nil
}
