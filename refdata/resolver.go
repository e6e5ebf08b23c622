package refdata

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

func NewResolver(directory Directory, calendar HolidayCalendar, logger *zap.Logger) (*Resolver, error) {
	if directory == nil {
		return nil, errors.New("directory is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		directory: directory,
		calendar:  calendar,
		logger:    logger,
	}, nil
}

// A Resolver resolves the reference data of task types into [Entry] values.
//
// Resolution is best effort: when the directory cannot resolve a task type or
// a due-date expression fails to evaluate, a partial entry with empty optional
// fields is returned and a warning is logged, rather than failing the whole
// derivation. Tasks must still be creatable with manual follow-up.
type Resolver struct {
	directory Directory
	calendar  HolidayCalendar
	logger    *zap.Logger
}

// Resolve resolves one task type: the deep link template is interpolated with
// the natural ID and the due-date expression is evaluated against asOf.
func (r *Resolver) Resolve(ctx context.Context, taskTypeName, naturalId string, asOf time.Time) Entry {
	taskType, err := r.directory.TaskType(ctx, taskTypeName)
	if err != nil {
		r.logger.Warn("failed to resolve task type",
			zap.String("taskType", taskTypeName),
			zap.Error(err),
		)
		return Entry{TaskName: taskTypeName}
	}

	dueDate, err := ResolveDueDate(ctx, taskType.DueDateExpression, asOf, r.calendar)
	if err != nil {
		r.logger.Warn("failed to resolve due date",
			zap.String("taskType", taskTypeName),
			zap.String("expression", taskType.DueDateExpression),
			zap.Error(err),
		)
	}

	return Entry{
		TaskTypeId:      taskType.Id,
		TaskName:        taskType.Name,
		DisplayName:     taskType.DisplayName,
		DeepLink:        InterpolateDeepLink(taskType.DeepLinkTemplate, naturalId),
		WorkQueue:       taskType.WorkQueue,
		DueDate:         dueDate,
		CandidateGroups: taskType.CandidateGroups,
	}
}

// ResolveAll resolves a set of task types against the same natural ID, keyed
// by task name.
func (r *Resolver) ResolveAll(ctx context.Context, taskTypeNames []string, naturalId string, asOf time.Time) EntrySet {
	entries := make(EntrySet, len(taskTypeNames))
	for _, name := range taskTypeNames {
		entries[name] = r.Resolve(ctx, name, naturalId, asOf)
	}
	return entries
}
