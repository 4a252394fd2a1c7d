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
	"encoding/json"
	"testing"
	"time"

	"github.com/amity/amity/pkg/assert"
)

func TestEdgeRefJSON(t *testing.T) {
	ref := EdgeRef{Date: "21/03/2025", UserID: 4}

	b, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("marshalling: %v", err)
	}
	assert.Equal(t, string(b), `["21/03/2025",4]`, "serialized form mismatch")

	var got EdgeRef
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	assert.Equal(t, got, ref, "round trip mismatch")
}

func TestEdgeRefJSON_Malformed(t *testing.T) {
	var got EdgeRef

	if err := json.Unmarshal([]byte(`["21/03/2025"]`), &got); err == nil {
		t.Error("expected an error for a one-element tuple")
	}
	if err := json.Unmarshal([]byte(`"21/03/2025"`), &got); err == nil {
		t.Error("expected an error for a non-tuple value")
	}
}

func TestNewUser(t *testing.T) {
	now := time.Date(2025, 3, 21, 9, 30, 0, 0, time.UTC)

	u := NewUser(1, "alice", "secret", now)

	assert.Equal(t, u.ID, 1, "id mismatch")
	assert.Equal(t, u.Username, "alice", "username mismatch")
	assert.Equal(t, u.Status, StatusOnline, "status mismatch")
	assert.Equal(t, u.LastActive, "2025-03-21 09:30", "last active mismatch")
	assert.Equal(t, len(u.Friends), 0, "friends should start empty")
	assert.Equal(t, len(u.FriendRequests), 0, "friend requests should start empty")
	assert.Equal(t, len(u.ChatIDs), 0, "chat ids should start empty")
}

func TestChatBetween(t *testing.T) {
	c := NewChat(1, 2, 3, "hi")

	assert.Equal(t, c.Between(2, 3), true, "sender to receiver mismatch")
	assert.Equal(t, c.Between(3, 2), true, "receiver to sender mismatch")
	assert.Equal(t, c.Between(2, 4), false, "unrelated pair mismatch")
}

func TestUserDocumentShape(t *testing.T) {
	u := NewUser(3, "carol", "pw", time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC))
	u.Friends = append(u.Friends, EdgeRef{Date: "02/01/2025", UserID: 1})

	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshalling: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}

	for _, key := range []string{"user_id", "username", "password", "name", "gender", "bday", "contact_num", "profile_pic", "status", "last_active", "remark", "chat_ids", "friends", "friend_request"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing document key %s", key)
		}
	}
}
