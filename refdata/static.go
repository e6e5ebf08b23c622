package refdata

import (
	"context"
	"fmt"
	"time"
)

// NewStaticDirectory creates a directory backed by a fixed set of task types,
// keyed by task type name. Used when reference data is provisioned through
// configuration instead of a remote directory service, and in tests.
func NewStaticDirectory(taskTypes []TaskType) *StaticDirectory {
	byName := make(map[string]TaskType, len(taskTypes))
	for _, taskType := range taskTypes {
		byName[taskType.Name] = taskType
	}
	return &StaticDirectory{taskTypes: byName}
}

type StaticDirectory struct {
	taskTypes map[string]TaskType
}

func (d *StaticDirectory) TaskType(_ context.Context, name string) (TaskType, error) {
	taskType, ok := d.taskTypes[name]
	if !ok {
		return TaskType{}, fmt.Errorf("no such task type %s", name)
	}
	return taskType, nil
}

// NewStaticCalendar creates a holiday calendar backed by a fixed list of
// dates in ISO 8601 date format.
func NewStaticCalendar(dates []string) (*StaticCalendar, error) {
	holidays := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("invalid holiday date %s", date)
		}
		holidays[date] = struct{}{}
	}
	return &StaticCalendar{holidays: holidays}, nil
}

type StaticCalendar struct {
	holidays map[string]struct{}
}

func (c *StaticCalendar) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := c.holidays[date.Format(time.DateOnly)]
	return ok, nil
}
