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

// Package report renders mood data into spreadsheet files
package report

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/amity/amity/pkg/model"
)

// WriteMonthlyMoods writes one row per day of the month to an .xlsx file
// at the given path. The entries are expected in calendar order, as
// produced by the monthly mood calendar.
func WriteMonthlyMoods(path, username string, year int, month time.Month, entries []model.MoodEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%s %d", month.String(), year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	if err := f.SetCellValue(sheet, "A1", "Date"); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := f.SetCellValue(sheet, "B1", "Mood"); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := f.SetCellValue(sheet, "D1", "User"); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := f.SetCellValue(sheet, "E1", username); err != nil {
		return errors.Wrap(err, "writing username")
	}

	for i, entry := range entries {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Date); err != nil {
			return errors.Wrapf(err, "writing date for row %d", row)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Mood); err != nil {
			return errors.Wrapf(err, "writing mood for row %d", row)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving report to %s", path)
	}

	return nil
}
