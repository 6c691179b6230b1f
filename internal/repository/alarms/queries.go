package alarms

// queryID identifies a prepared SQL statement.
type queryID uint8

const (
	queryCredentialGet queryID = iota
	queryCredentialSet
	queryAlarmGetAll
	queryAlarmDeleteAll
	queryAlarmAdd
)

// initQueries create the schema of a fresh database.
//
//nolint:gochecknoglobals // Static SQL.
var initQueries = []string{
	`
CREATE TABLE IF NOT EXISTS credential (
    id      INTEGER PRIMARY KEY CHECK (id = 1),
    api_key TEXT NOT NULL DEFAULT ''
)
`,
	`
CREATE TABLE IF NOT EXISTS alarm (
    position            INTEGER PRIMARY KEY,
    id                  TEXT NOT NULL UNIQUE,
    name                TEXT NOT NULL,
    target_hours        INTEGER NOT NULL CHECK (target_hours BETWEEN 0 AND 23),
    target_minutes      INTEGER NOT NULL CHECK (target_minutes BETWEEN 0 AND 59),
    enabled             INTEGER NOT NULL DEFAULT 1,
    has_triggered       INTEGER NOT NULL DEFAULT 0,
    last_triggered_date TEXT NOT NULL DEFAULT '',
    kind                TEXT NOT NULL CHECK (kind IN ('manual', 'interval'))
)
`,
}

// dbQueries maps query ids to their SQL.
//
//nolint:gochecknoglobals // Static SQL.
var dbQueries = map[queryID]string{
	queryCredentialGet: "SELECT api_key FROM credential WHERE id = 1",
	queryCredentialSet: `
INSERT INTO credential (id, api_key) VALUES (1, ?)
ON CONFLICT (id) DO UPDATE SET api_key = excluded.api_key
`,
	queryAlarmGetAll: `
SELECT
    id,
    name,
    target_hours,
    target_minutes,
    enabled,
    has_triggered,
    last_triggered_date,
    kind
FROM alarm
ORDER BY position
`,
	queryAlarmDeleteAll: "DELETE FROM alarm",
	queryAlarmAdd: `
INSERT INTO alarm (position, id, name, target_hours, target_minutes, enabled, has_triggered, last_triggered_date, kind)
VALUES            (       ?,  ?,    ?,            ?,              ?,       ?,             ?,                   ?,    ?)
`,
}
