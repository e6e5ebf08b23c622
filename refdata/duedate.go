package refdata

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/adhocore/gronx"
)

var workingDayRegexp = regexp.MustCompile(`^P(\d+)D!$`)

// ResolveDueDate evaluates a due-date expression against a point in time,
// returning a literal timestamp.
//
// Supported expression forms:
//
//   - ISO 8601 duration, e.g. `P2D` or `PT12H`, added to asOf
//   - working-day duration, e.g. `P2D!`, added to asOf while skipping
//     weekends and public holidays
//   - CRON expression, e.g. `0 9 * * MON`, resolved to its next tick after asOf
//
// An empty expression resolves to the zero time, which flattens to an empty
// string variable.
func ResolveDueDate(ctx context.Context, expression string, asOf time.Time, calendar HolidayCalendar) (time.Time, error) {
	if expression == "" {
		return time.Time{}, nil
	}

	if match := workingDayRegexp.FindStringSubmatch(expression); match != nil {
		days, _ := strconv.Atoi(match[1])
		return addWorkingDays(ctx, asOf, days, calendar)
	}

	if gronx.IsValid(expression) {
		next, err := gronx.NextTickAfter(expression, asOf, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to resolve CRON expression %s: %v", expression, err)
		}
		return next, nil
	}

	duration, err := NewISO8601Duration(expression)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date expression %s", expression)
	}

	return duration.Calculate(asOf), nil
}

func addWorkingDays(ctx context.Context, t time.Time, days int, calendar HolidayCalendar) (time.Time, error) {
	for days > 0 {
		t = t.AddDate(0, 0, 1)

		working, err := isWorkingDay(ctx, t, calendar)
		if err != nil {
			return time.Time{}, err
		}
		if working {
			days--
		}
	}
	return t, nil
}

func isWorkingDay(ctx context.Context, t time.Time, calendar HolidayCalendar) (bool, error) {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false, nil
	}
	if calendar == nil {
		return true, nil
	}

	holiday, err := calendar.IsHoliday(ctx, t)
	if err != nil {
		return false, fmt.Errorf("failed to look up holiday calendar: %w", err)
	}
	return !holiday, nil
}
