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

package mood

import (
	"fmt"
	"time"

	"github.com/amity/amity/pkg/cli/client"
	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/amity/amity/pkg/model"
	"github.com/amity/amity/pkg/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * Record today's mood
 amity mood set happy

 * Show the last week of moods
 amity mood ls --days 7

 * Show this month as a calendar
 amity mood calendar

 * Export a month to a spreadsheet
 amity mood export --month 6 --out june.xlsx`

// NewCmd returns a new mood command
func NewCmd(ctx context.AmityCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mood",
		Short:   "Track your daily mood",
		Example: example,
	}

	cmd.AddCommand(newSetCmd(ctx))
	cmd.AddCommand(newLsCmd(ctx))
	cmd.AddCommand(newCalendarCmd(ctx))
	cmd.AddCommand(newExportCmd(ctx))

	return cmd
}

func moodGlyph(mood string) string {
	switch mood {
	case "happy", "excited":
		return log.ColorGreen.Sprint(mood)
	case "sad", "angry":
		return log.ColorRed.Sprint(mood)
	case "tired":
		return log.ColorYellow.Sprint(mood)
	case model.MoodUnknown:
		return log.ColorGray.Sprint("-")
	default:
		return mood
	}
}

func newSetCmd(ctx context.AmityCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "set <mood>",
		Short: "Record your mood for today",
		Long:  fmt.Sprintf("Record your mood for today. One of: %v. Setting it again overwrites the earlier value.", model.MoodLabels),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.SetMood(ctx, args[0]); err != nil {
				var httpErr *client.HTTPError
				if errors.As(err, &httpErr) {
					log.Errorf("%s\n", httpErr.Message)
					return nil
				}

				return errors.Wrap(err, "setting mood")
			}

			log.Successf("mood recorded as %s\n", args[0])

			return nil
		},
	}
}

func newLsCmd(ctx context.AmityCtx) *cobra.Command {
	var daysFlag int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List recorded moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.GetMoods(ctx, daysFlag)
			if err != nil {
				return errors.Wrap(err, "getting moods")
			}

			if len(entries) == 0 {
				log.Plain("no moods recorded yet\n")
				return nil
			}

			for _, e := range entries {
				log.Plainf("%s %s\n", e.Date, moodGlyph(e.Mood))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&daysFlag, "days", 0, "limit to one entry per day for the last n days")

	return cmd
}

func calendarFlags(cmd *cobra.Command, yearFlag, monthFlag *int) {
	cmd.Flags().IntVar(yearFlag, "year", 0, "calendar year (defaults to the current year)")
	cmd.Flags().IntVar(monthFlag, "month", 0, "calendar month 1-12 (defaults to the current month)")
}

func resolveMonth(ctx context.AmityCtx, yearFlag, monthFlag int) (int, int) {
	now := ctx.Clock.Now()

	year := yearFlag
	if year == 0 {
		year = now.Year()
	}
	month := monthFlag
	if month == 0 {
		month = int(now.Month())
	}

	return year, month
}

func newCalendarCmd(ctx context.AmityCtx) *cobra.Command {
	var yearFlag, monthFlag int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show one mood entry per day of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month := resolveMonth(ctx, yearFlag, monthFlag)

			entries, err := client.GetMoodCalendar(ctx, year, month)
			if err != nil {
				return errors.Wrap(err, "getting mood calendar")
			}

			for _, e := range entries {
				log.Plainf("%s %s\n", e.Date, moodGlyph(e.Mood))
			}

			return nil
		},
	}

	calendarFlags(cmd, &yearFlag, &monthFlag)

	return cmd
}

func newExportCmd(ctx context.AmityCtx) *cobra.Command {
	var yearFlag, monthFlag int
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of moods to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month := resolveMonth(ctx, yearFlag, monthFlag)

			entries, err := client.GetMoodCalendar(ctx, year, month)
			if err != nil {
				return errors.Wrap(err, "getting mood calendar")
			}

			converted := make([]model.MoodEntry, 0, len(entries))
			for _, e := range entries {
				converted = append(converted, model.MoodEntry{Date: e.Date, Mood: e.Mood})
			}

			out := outFlag
			if out == "" {
				out = fmt.Sprintf("moods-%d-%02d.xlsx", year, month)
			}

			err = report.WriteMonthlyMoods(out, ctx.Username, year, time.Month(month), converted)
			if err != nil {
				return errors.Wrap(err, "writing report")
			}

			log.Successf("exported to %s\n", out)

			return nil
		},
	}

	calendarFlags(cmd, &yearFlag, &monthFlag)
	cmd.Flags().StringVar(&outFlag, "out", "", "output file path (defaults to moods-<year>-<month>.xlsx)")

	return cmd
}
