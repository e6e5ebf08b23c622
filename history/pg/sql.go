package pg

const sqlCreateTable = `
CREATE TABLE IF NOT EXISTS task_history_entry (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,

	task_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	details JSONB
);

CREATE INDEX IF NOT EXISTS task_history_entry_task_id_idx ON task_history_entry (task_id, id);
`

const sqlInsertEntry = `
INSERT INTO task_history_entry (
	task_id,
	event_type,
	timestamp,
	details
) VALUES (
	$1,
	$2,
	$3,
	$4
)
`

const sqlSelectEntries = `
SELECT
	task_id,
	event_type,
	timestamp,
	details
FROM
	task_history_entry
WHERE
	task_id = $1
ORDER BY
	id
`
