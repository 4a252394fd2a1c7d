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
	"testing"

	"github.com/amity/amity/pkg/assert"
	"github.com/amity/amity/pkg/model"
)

func TestMergeUsers(t *testing.T) {
	disk := []model.User{
		{ID: 1, Username: "alice", Remark: "from disk"},
		{ID: 2, Username: "bob"},
	}
	session := []model.User{
		{ID: 1, Username: "alice", Remark: "from session"},
		{ID: 3, Username: "carol"},
	}

	got := mergeUsers(disk, session)

	assert.Equal(t, len(got), 3, "user count mismatch")
	assert.Equal(t, got[0].Remark, "from session", "session should win for a touched key")
	assert.Equal(t, got[1].Username, "bob", "untouched disk record should survive")
	assert.Equal(t, got[2].Username, "carol", "session-only record should be appended")
}

func TestMergeUsers_DisjointEditsPreserved(t *testing.T) {
	// two sessions loaded the same base and each mutated a different user
	base := []model.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}

	afterFirst := mergeUsers(base, []model.User{{ID: 1, Username: "alice", Remark: "hi"}})
	afterSecond := mergeUsers(afterFirst, []model.User{{ID: 2, Username: "bob", Status: model.StatusOnline}})

	assert.Equal(t, afterSecond[0].Remark, "hi", "first session's edit was lost")
	assert.Equal(t, afterSecond[1].Status, model.StatusOnline, "second session's edit was lost")
}

func TestMergeChats(t *testing.T) {
	disk := []model.Chat{{ID: 1, Sender: 1, Receiver: 2, Content: "hi"}}
	session := []model.Chat{{ID: 2, Sender: 2, Receiver: 1, Content: "hello"}}

	got := mergeChats(disk, session)

	assert.Equal(t, len(got), 2, "chat count mismatch")
	assert.Equal(t, got[0].ID, 1, "disk chat lost")
	assert.Equal(t, got[1].ID, 2, "session chat lost")
}

func TestMergeMoods_PerDateGranularity(t *testing.T) {
	disk := []model.Mood{
		{UserID: 1, Moods: []model.MoodEntry{
			{Date: "2025-03-20", Mood: "happy"},
			{Date: "2025-03-21", Mood: "sad"},
		}},
	}
	// the session loaded the group before 03-21 existed on disk and
	// writes a different date
	session := []model.Mood{
		{UserID: 1, Moods: []model.MoodEntry{
			{Date: "2025-03-20", Mood: "happy"},
			{Date: "2025-03-22", Mood: "excited"},
		}},
	}

	got := mergeMoods(disk, session)

	assert.Equal(t, len(got), 1, "group count mismatch")
	assert.Equal(t, len(got[0].Moods), 3, "entry count mismatch")

	entry, ok := got[0].Entry("2025-03-21")
	assert.Equal(t, ok, true, "disk-only date was lost")
	assert.Equal(t, entry.Mood, "sad", "disk-only entry mismatch")

	entry, ok = got[0].Entry("2025-03-22")
	assert.Equal(t, ok, true, "session-only date was lost")
	assert.Equal(t, entry.Mood, "excited", "session-only entry mismatch")
}

func TestMergeMoods_SameDateSessionWins(t *testing.T) {
	disk := []model.Mood{
		{UserID: 1, Moods: []model.MoodEntry{{Date: "2025-03-20", Mood: "happy"}}},
	}
	session := []model.Mood{
		{UserID: 1, Moods: []model.MoodEntry{{Date: "2025-03-20", Mood: "tired"}}},
	}

	got := mergeMoods(disk, session)

	assert.Equal(t, len(got[0].Moods), 1, "upsert should not append")
	assert.Equal(t, got[0].Moods[0].Mood, "tired", "session should win for a touched date")
}

func TestMergeNextUserID(t *testing.T) {
	users := []model.User{{ID: 1}, {ID: 5}, {ID: 3}}

	assert.Equal(t, mergeNextUserID(2, users), 6, "counter should not trail an allocated id")
	assert.Equal(t, mergeNextUserID(9, users), 9, "larger disk counter should win")
}
