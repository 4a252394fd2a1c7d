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

	"github.com/amity/amity/pkg/model"
)

// The merge functions reconcile a session's mutated records with the
// freshly read on-disk state. The policy is union with last-in-memory-wins
// per primary key: concurrent edits to different records are both
// preserved, while concurrent edits to the same record race and the last
// save wins for that record's full content. Deletions are excluded here on
// purpose; they are applied as transforms on the fresh state under the
// document lock, since a union cannot express them.

// mergeUsers overlays the session's user records onto the on-disk ones,
// keyed by user id. On-disk order is preserved; records the disk has not
// seen yet are appended in session order.
func mergeUsers(disk, session []model.User) []model.User {
	byID := make(map[int]model.User, len(session))
	for _, u := range session {
		byID[u.ID] = u
	}

	ret := make([]model.User, 0, len(disk)+len(session))
	seen := make(map[int]bool, len(disk))

	for _, u := range disk {
		if mutated, ok := byID[u.ID]; ok {
			ret = append(ret, mutated)
		} else {
			ret = append(ret, u)
		}
		seen[u.ID] = true
	}

	for _, u := range session {
		if !seen[u.ID] {
			ret = append(ret, u)
		}
	}

	return ret
}

func mergeChats(disk, session []model.Chat) []model.Chat {
	byID := make(map[int]model.Chat, len(session))
	for _, c := range session {
		byID[c.ID] = c
	}

	ret := make([]model.Chat, 0, len(disk)+len(session))
	seen := make(map[int]bool, len(disk))

	for _, c := range disk {
		if mutated, ok := byID[c.ID]; ok {
			ret = append(ret, mutated)
		} else {
			ret = append(ret, c)
		}
		seen[c.ID] = true
	}

	for _, c := range session {
		if !seen[c.ID] {
			ret = append(ret, c)
		}
	}

	return ret
}

func mergePosts(disk, session []model.Post) []model.Post {
	byID := make(map[int]model.Post, len(session))
	for _, p := range session {
		byID[p.ID] = p
	}

	ret := make([]model.Post, 0, len(disk)+len(session))
	seen := make(map[int]bool, len(disk))

	for _, p := range disk {
		if mutated, ok := byID[p.ID]; ok {
			ret = append(ret, mutated)
		} else {
			ret = append(ret, p)
		}
		seen[p.ID] = true
	}

	for _, p := range session {
		if !seen[p.ID] {
			ret = append(ret, p)
		}
	}

	return ret
}

// mergeMoods reconciles mood groups at (user id, date) granularity rather
// than whole-group granularity, so that two sessions writing different
// dates for the same user both survive.
func mergeMoods(disk, session []model.Mood) []model.Mood {
	sessionByUser := make(map[int]model.Mood, len(session))
	for _, m := range session {
		sessionByUser[m.UserID] = m
	}

	ret := make([]model.Mood, 0, len(disk)+len(session))
	seen := make(map[int]bool, len(disk))

	for _, group := range disk {
		if mutated, ok := sessionByUser[group.UserID]; ok {
			ret = append(ret, mergeMoodGroup(group, mutated))
		} else {
			ret = append(ret, group)
		}
		seen[group.UserID] = true
	}

	for _, group := range session {
		if !seen[group.UserID] {
			ret = append(ret, sortMoodGroup(group))
		}
	}

	return ret
}

// mergeMoodGroup overlays the session's entries onto the disk entries of
// one user, keyed by date
func mergeMoodGroup(disk, session model.Mood) model.Mood {
	byDate := make(map[string]model.MoodEntry, len(disk.Moods)+len(session.Moods))
	for _, e := range disk.Moods {
		byDate[e.Date] = e
	}
	for _, e := range session.Moods {
		byDate[e.Date] = e
	}

	merged := model.Mood{UserID: disk.UserID, Moods: make([]model.MoodEntry, 0, len(byDate))}
	for _, e := range byDate {
		merged.Moods = append(merged.Moods, e)
	}

	return sortMoodGroup(merged)
}

func sortMoodGroup(group model.Mood) model.Mood {
	sort.Slice(group.Moods, func(i, j int) bool {
		return group.Moods[i].Date < group.Moods[j].Date
	})

	return group
}

// mergeNextUserID reconciles the persisted id counter. Taking the max of
// the counters, floored at one past the highest allocated id, prevents a
// stale session from winding the counter back and reissuing a key.
func mergeNextUserID(diskNext int, users []model.User) int {
	next := diskNext
	for _, u := range users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}

	return next
}

func mergeNextChatID(diskNext int, chats []model.Chat) int {
	next := diskNext
	for _, c := range chats {
		if c.ID >= next {
			next = c.ID + 1
		}
	}

	return next
}

func mergeNextPostID(diskNext int, posts []model.Post) int {
	next := diskNext
	for _, p := range posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}

	return next
}
