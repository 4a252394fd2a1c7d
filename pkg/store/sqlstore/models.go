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
	"time"

	"github.com/amity/amity/pkg/model"
)

// User is the relational model for a user. The relationship collections of
// the document representation live in their own tables here; conversion
// between the two happens at this package's boundary only.
type User struct {
	ID         int    `gorm:"primaryKey"`
	Username   string `gorm:"uniqueIndex;type:text"`
	Password   string
	Name       string
	Gender     string
	Bday       string
	ContactNum string
	ProfilePic string
	Status     string `gorm:"index"`
	LastActive string
	Remark     string
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Chat is the relational model for a message
type Chat struct {
	ID        int `gorm:"primaryKey"`
	Sender    int `gorm:"index"`
	Receiver  int `gorm:"index"`
	Content   string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Friend is one direction of a confirmed friendship. A friendship is
// stored as two symmetric rows.
type Friend struct {
	ID        int `gorm:"primaryKey"`
	UserID    int `gorm:"uniqueIndex:idx_friend_pair"`
	FriendID  int `gorm:"uniqueIndex:idx_friend_pair"`
	SinceDate string
	User      User `gorm:"foreignKey:UserID"`
}

// FriendRequest is a pending, directed friendship proposal. At most one
// pending request exists per ordered pair.
type FriendRequest struct {
	ID         int `gorm:"primaryKey"`
	SenderID   int `gorm:"uniqueIndex:idx_request_pair"`
	ReceiverID int `gorm:"uniqueIndex:idx_request_pair"`
	ReqDate    string
}

// Post is the relational model for an image post
type Post struct {
	ID        int `gorm:"primaryKey"`
	UserID    int `gorm:"index"`
	ImagePath string
	Dt        string
	User      User `gorm:"foreignKey:UserID"`
}

// MoodRow is one dated mood record, unique per (user, date)
type MoodRow struct {
	ID        int    `gorm:"primaryKey"`
	UserID    int    `gorm:"uniqueIndex:idx_mood_user_date"`
	MoodDate  string `gorm:"uniqueIndex:idx_mood_user_date"`
	MoodValue string
	User      User `gorm:"foreignKey:UserID"`
}

// TableName overrides the default pluralization
func (MoodRow) TableName() string {
	return "moods"
}

func toModelUser(u User, friends []Friend, requests []FriendRequest) model.User {
	ret := model.User{
		ID:             u.ID,
		Username:       u.Username,
		Password:       u.Password,
		Name:           u.Name,
		Gender:         u.Gender,
		Birthday:       u.Bday,
		ContactNum:     u.ContactNum,
		ProfilePic:     u.ProfilePic,
		Status:         u.Status,
		LastActive:     u.LastActive,
		Remark:         u.Remark,
		ChatIDs:        []int{},
		Friends:        []model.EdgeRef{},
		FriendRequests: []model.EdgeRef{},
	}

	for _, f := range friends {
		ret.Friends = append(ret.Friends, model.EdgeRef{Date: f.SinceDate, UserID: f.FriendID})
	}
	for _, r := range requests {
		ret.FriendRequests = append(ret.FriendRequests, model.EdgeRef{Date: r.ReqDate, UserID: r.SenderID})
	}

	return ret
}

func fromModelUser(u model.User) User {
	return User{
		ID:         u.ID,
		Username:   u.Username,
		Password:   u.Password,
		Name:       u.Name,
		Gender:     u.Gender,
		Bday:       u.Birthday,
		ContactNum: u.ContactNum,
		ProfilePic: u.ProfilePic,
		Status:     u.Status,
		LastActive: u.LastActive,
		Remark:     u.Remark,
	}
}
