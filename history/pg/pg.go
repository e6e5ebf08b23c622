// Package pg provides a PostgreSQL task history store, used when the read
// model must survive restarts and be shared between instances.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/jackc/pgx/v5/pgxpool"
)

func New(databaseUrl string, customizers ...func(*Options)) (*Store, error) {
	if databaseUrl == "" {
		return nil, errors.New("database URL is empty")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	pgPoolConfig, err := pgxpool.ParseConfig(databaseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %v", err)
	}

	if _, ok := pgPoolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		pgPoolConfig.ConnConfig.RuntimeParams["application_name"] = options.ApplicationName
	}

	pgPoolCtx, pgPoolCancel := context.WithTimeout(context.Background(), options.Timeout)
	defer pgPoolCancel()

	pgPool, err := pgxpool.NewWithConfig(pgPoolCtx, pgPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %v", err)
	}

	store := Store{pgPool: pgPool}

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), options.Timeout)
	defer migrateCancel()

	if err := store.migrateDatabase(migrateCtx); err != nil {
		store.Shutdown()
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return &store, nil
}

func NewOptions() Options {
	return Options{
		ApplicationName: "progression-task-history",
		Timeout:         30 * time.Second,
	}
}

type Options struct {
	ApplicationName string        // Application name, set as a runtime parameter.
	Timeout         time.Duration // Timeout for pool creation and migration.
}

// Store persists task history entries in a single append-only table. Entry
// order within a task ID is the insertion order of the serial primary key.
type Store struct {
	pgPool *pgxpool.Pool
}

func (s *Store) Append(ctx context.Context, entry history.Entry) error {
	_, err := s.pgPool.Exec(ctx, sqlInsertEntry,
		entry.TaskId,
		entry.Type.String(),
		entry.Timestamp,
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task history entry %s: %v", entry.TaskId, err)
	}
	return nil
}

func (s *Store) SelectByTaskId(ctx context.Context, taskId string) ([]history.Entry, error) {
	rows, err := s.pgPool.Query(ctx, sqlSelectEntries, taskId)
	if err != nil {
		return nil, fmt.Errorf("failed to select task history entries %s: %v", taskId, err)
	}
	defer rows.Close()

	entries := make([]history.Entry, 0)
	for rows.Next() {
		var (
			entry     history.Entry
			eventType string
		)

		if err := rows.Scan(&entry.TaskId, &eventType, &entry.Timestamp, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to scan task history entry: %v", err)
		}

		entry.Type = history.MapEventType(eventType)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *Store) Shutdown() {
	s.pgPool.Close()
}

func (s *Store) migrateDatabase(ctx context.Context) error {
	_, err := s.pgPool.Exec(ctx, sqlCreateTable)
	return err
}
