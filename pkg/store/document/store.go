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

package document

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Users implements store.Store
func (s *Store) Users() ([]model.User, error) {
	var ret []model.User

	err := s.viewUsers(func(doc userDocument) error {
		ret = doc.Users
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// UserByID implements store.Store
func (s *Store) UserByID(id int) (model.User, error) {
	var ret model.User
	found := false

	err := s.viewUsers(func(doc userDocument) error {
		for _, u := range doc.Users {
			if u.ID == id {
				ret = u
				found = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user %d", id)
	}

	return ret, nil
}

// UserByUsername implements store.Store
func (s *Store) UserByUsername(username string) (model.User, error) {
	var ret model.User
	found := false

	err := s.viewUsers(func(doc userDocument) error {
		for _, u := range doc.Users {
			if u.Username == username {
				ret = u
				found = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user '%s'", username)
	}

	return ret, nil
}

// CreateUser implements store.Store. The id is allocated from the persisted
// counter under the document lock, and the username uniqueness check runs
// against the fresh on-disk state rather than the caller's snapshot.
func (s *Store) CreateUser(user model.User) (model.User, error) {
	err := s.updateUsers(func(doc *userDocument) error {
		for _, u := range doc.Users {
			if u.Username == user.Username {
				return model.ErrDuplicateUsername
			}
		}

		user.ID = doc.NextUserID
		doc.Users = append(doc.Users, user)
		doc.NextUserID = mergeNextUserID(doc.NextUserID+1, doc.Users)

		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

// SaveUsers implements store.Store using the merge protocol: the on-disk
// document is re-read under the lock and the given records overlay it
// per user id
func (s *Store) SaveUsers(users ...model.User) error {
	return s.updateUsers(func(doc *userDocument) error {
		doc.Users = mergeUsers(doc.Users, users)
		doc.NextUserID = mergeNextUserID(doc.NextUserID, doc.Users)
		return nil
	})
}

func findUser(doc *userDocument, id int) (int, bool) {
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			return i, true
		}
	}

	return 0, false
}

// AddFriendRequest implements store.Store. The pending request lives on
// the receiver's record.
func (s *Store) AddFriendRequest(senderID, receiverID int, date string) error {
	return s.updateUsers(func(doc *userDocument) error {
		i, ok := findUser(doc, receiverID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", receiverID)
		}

		if doc.Users[i].HasRequestFrom(senderID) {
			return nil
		}
		doc.Users[i].FriendRequests = append(doc.Users[i].FriendRequests, model.EdgeRef{Date: date, UserID: senderID})

		return nil
	})
}

// RemoveFriendRequest implements store.Store
func (s *Store) RemoveFriendRequest(senderID, receiverID int) error {
	return s.updateUsers(func(doc *userDocument) error {
		i, ok := findUser(doc, receiverID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", receiverID)
		}

		kept := doc.Users[i].FriendRequests[:0]
		for _, req := range doc.Users[i].FriendRequests {
			if req.UserID != senderID {
				kept = append(kept, req)
			}
		}
		doc.Users[i].FriendRequests = kept

		return nil
	})
}

// AcceptFriendRequest implements store.Store. Both user records and the
// pending request are updated under the same document lock, keeping the
// friends relation symmetric.
func (s *Store) AcceptFriendRequest(receiverID, senderID int, date string) error {
	return s.updateUsers(func(doc *userDocument) error {
		i, ok := findUser(doc, receiverID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", receiverID)
		}
		j, ok := findUser(doc, senderID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", senderID)
		}

		if !doc.Users[i].IsFriend(senderID) {
			doc.Users[i].Friends = append(doc.Users[i].Friends, model.EdgeRef{Date: date, UserID: senderID})
		}
		if !doc.Users[j].IsFriend(receiverID) {
			doc.Users[j].Friends = append(doc.Users[j].Friends, model.EdgeRef{Date: date, UserID: receiverID})
		}

		kept := doc.Users[i].FriendRequests[:0]
		for _, req := range doc.Users[i].FriendRequests {
			if req.UserID != senderID {
				kept = append(kept, req)
			}
		}
		doc.Users[i].FriendRequests = kept

		return nil
	})
}

// RemoveFriendship implements store.Store
func (s *Store) RemoveFriendship(userID, friendID int) error {
	return s.updateUsers(func(doc *userDocument) error {
		i, ok := findUser(doc, userID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", userID)
		}
		j, ok := findUser(doc, friendID)
		if !ok {
			return errors.Wrapf(store.ErrNotFound, "user %d", friendID)
		}

		keptI := doc.Users[i].Friends[:0]
		for _, f := range doc.Users[i].Friends {
			if f.UserID != friendID {
				keptI = append(keptI, f)
			}
		}
		doc.Users[i].Friends = keptI

		keptJ := doc.Users[j].Friends[:0]
		for _, f := range doc.Users[j].Friends {
			if f.UserID != userID {
				keptJ = append(keptJ, f)
			}
		}
		doc.Users[j].Friends = keptJ

		return nil
	})
}

// CreateChat implements store.Store. The chat id is also appended to both
// participants' chat_ids list. The two documents are guarded by separate
// locks, so the bookkeeping is not atomic with the message append; a crash
// in between leaves them independently consistent.
func (s *Store) CreateChat(sender, receiver int, content string) (model.Chat, error) {
	var chat model.Chat

	err := s.updateChats(func(doc *chatDocument) error {
		chat = model.NewChat(doc.NextChatID, sender, receiver, content)
		doc.Chats = append(doc.Chats, chat)
		doc.NextChatID = mergeNextChatID(doc.NextChatID+1, doc.Chats)
		return nil
	})
	if err != nil {
		return model.Chat{}, err
	}

	err = s.updateUsers(func(doc *userDocument) error {
		if i, ok := findUser(doc, sender); ok {
			doc.Users[i].ChatIDs = append(doc.Users[i].ChatIDs, chat.ID)
		}
		if j, ok := findUser(doc, receiver); ok {
			doc.Users[j].ChatIDs = append(doc.Users[j].ChatIDs, chat.ID)
		}
		return nil
	})
	if err != nil {
		return model.Chat{}, errors.Wrap(err, "recording chat ids")
	}

	return chat, nil
}

// ChatsBetween implements store.Store
func (s *Store) ChatsBetween(userID, friendID int) ([]model.Chat, error) {
	var ret []model.Chat

	err := s.viewChats(func(doc chatDocument) error {
		for _, c := range doc.Chats {
			if c.Between(userID, friendID) {
				ret = append(ret, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })

	return ret, nil
}

// DeleteChatsBetween implements store.Store. The deletion is applied to
// the fresh on-disk state under the lock, so messages appended by other
// sessions between unrelated users survive.
func (s *Store) DeleteChatsBetween(userID, friendID int) error {
	return s.updateChats(func(doc *chatDocument) error {
		kept := doc.Chats[:0]
		for _, c := range doc.Chats {
			if !c.Between(userID, friendID) {
				kept = append(kept, c)
			}
		}
		doc.Chats = kept
		return nil
	})
}

// AllocatePostID implements store.Store. The incremented counter is
// persisted before the caller writes the image file named after the id.
func (s *Store) AllocatePostID() (int, error) {
	var id int

	err := s.updatePosts(func(doc *postDocument) error {
		id = doc.NextPostID
		doc.NextPostID = id + 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// CreatePost implements store.Store
func (s *Store) CreatePost(post model.Post) error {
	return s.updatePosts(func(doc *postDocument) error {
		doc.Posts = mergePosts(doc.Posts, []model.Post{post})
		doc.NextPostID = mergeNextPostID(doc.NextPostID, doc.Posts)
		return nil
	})
}

// PostsByUser implements store.Store
func (s *Store) PostsByUser(userID int) ([]model.Post, error) {
	var ret []model.Post

	err := s.viewPosts(func(doc postDocument) error {
		for _, p := range doc.Posts {
			if p.UserID == userID {
				ret = append(ret, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i].ID > ret[j].ID })

	return ret, nil
}

// SetMood implements store.Store. The upsert is expressed as a
// single-entry merge at (user id, date) granularity.
func (s *Store) SetMood(userID int, date, label string) error {
	session := []model.Mood{
		{UserID: userID, Moods: []model.MoodEntry{{Date: date, Mood: label}}},
	}

	return s.updateMoods(func(doc *moodDocument) error {
		doc.Moods = mergeMoods(doc.Moods, session)
		return nil
	})
}

// SaveMoods persists the given mutated mood groups, reconciling them with
// the fresh on-disk state at (user id, date) granularity
func (s *Store) SaveMoods(groups ...model.Mood) error {
	return s.updateMoods(func(doc *moodDocument) error {
		doc.Moods = mergeMoods(doc.Moods, groups)
		return nil
	})
}

// MoodsByUser implements store.Store
func (s *Store) MoodsByUser(userID int) (model.Mood, error) {
	ret := model.NewMood(userID)

	err := s.viewMoods(func(doc moodDocument) error {
		for _, m := range doc.Moods {
			if m.UserID == userID {
				ret = m
				break
			}
		}
		return nil
	})
	if err != nil {
		return model.Mood{}, err
	}

	return ret, nil
}
