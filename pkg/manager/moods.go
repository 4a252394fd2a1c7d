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
	"time"

	"github.com/pkg/errors"

	"github.com/amity/amity/pkg/model"
)

// SetDailyMood records the user's mood for today. Setting it again on the
// same day overwrites the earlier label.
func (m *Manager) SetDailyMood(userID int, label string) error {
	if err := model.ValidateMood(label); err != nil {
		return ValidationError{Reasons: []error{err}}
	}

	if _, err := m.Store.UserByID(userID); err != nil {
		return errors.Wrap(err, "finding user")
	}

	date := m.Clock.Now().Format(model.MoodDateLayout)
	if err := m.Store.SetMood(userID, date, label); err != nil {
		return errors.Wrap(err, "recording mood")
	}

	return nil
}

// UserMoods returns every recorded mood entry for the user, oldest first
func (m *Manager) UserMoods(userID int) ([]model.MoodEntry, error) {
	mood, err := m.Store.MoodsByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading moods")
	}

	return mood.Moods, nil
}

// moodsByDate indexes the user's entries for calendar lookups
func (m *Manager) moodsByDate(userID int) (map[string]string, error) {
	mood, err := m.Store.MoodsByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading moods")
	}

	ret := make(map[string]string, len(mood.Moods))
	for _, entry := range mood.Moods {
		ret[entry.Date] = entry.Mood
	}

	return ret, nil
}

// LastNDaysMoods returns one entry per day for the n days ending today,
// most recent first. Days without a recorded mood carry the unknown label.
func (m *Manager) LastNDaysMoods(userID, n int) ([]model.MoodEntry, error) {
	byDate, err := m.moodsByDate(userID)
	if err != nil {
		return nil, err
	}

	now := m.Clock.Now()
	ret := make([]model.MoodEntry, 0, n)
	for i := 0; i < n; i++ {
		date := now.AddDate(0, 0, -i).Format(model.MoodDateLayout)

		label, ok := byDate[date]
		if !ok {
			label = model.MoodUnknown
		}
		ret = append(ret, model.MoodEntry{Date: date, Mood: label})
	}

	return ret, nil
}

// MonthlyMoods returns one entry for every day of the given month, in
// calendar order. Days without a recorded mood carry the unknown label.
func (m *Manager) MonthlyMoods(userID, year int, month time.Month) ([]model.MoodEntry, error) {
	byDate, err := m.moodsByDate(userID)
	if err != nil {
		return nil, err
	}

	// day 0 of the next month is the last day of this one
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	ret := make([]model.MoodEntry, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(model.MoodDateLayout)

		label, ok := byDate[date]
		if !ok {
			label = model.MoodUnknown
		}
		ret = append(ret, model.MoodEntry{Date: date, Mood: label})
	}

	return ret, nil
}
