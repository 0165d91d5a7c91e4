// Package export writes snapshots of the session's tasks to a SQLite file.
// Snapshots are write-only; momentum never loads them back.
package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nissyi-gh/momentum/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       TEXT PRIMARY KEY,
	taken_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	snapshot_id TEXT    NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	id          INTEGER NOT NULL,
	description TEXT    NOT NULL,
	quote       TEXT    NOT NULL DEFAULT '',
	deadline    TEXT,
	completed   INTEGER NOT NULL DEFAULT 0,
	notes       TEXT    NOT NULL DEFAULT '',
	priority    TEXT    NOT NULL,
	created_at  TEXT    NOT NULL,
	PRIMARY KEY (snapshot_id, id)
);
CREATE TABLE IF NOT EXISTS subtasks (
	snapshot_id TEXT    NOT NULL,
	task_id     INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	description TEXT    NOT NULL,
	completed   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (snapshot_id, task_id, position),
	FOREIGN KEY (snapshot_id, task_id) REFERENCES tasks(snapshot_id, id) ON DELETE CASCADE
);`

// Snapshot identifies one export.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	Tasks   int
}

// SnapshotWriter manages a SQLite file of task snapshots.
type SnapshotWriter struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database and ensures the schema exists.
func Open(dbPath string) (*SnapshotWriter, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SnapshotWriter{db: db}, nil
}

// Write stores tasks, in order, as a new snapshot.
func (w *SnapshotWriter) Write(tasks []model.Task, takenAt time.Time) (Snapshot, error) {
	snap := Snapshot{ID: uuid.NewString(), TakenAt: takenAt, Tasks: len(tasks)}

	tx, err := w.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO snapshots (id, taken_at) VALUES (?, ?)",
		snap.ID, takenAt.Format(time.RFC3339)); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	for pos, t := range tasks {
		var deadline sql.NullString
		if t.Deadline != nil {
			deadline = sql.NullString{String: *t.Deadline, Valid: true}
		}
		_, err := tx.Exec(
			`INSERT INTO tasks (snapshot_id, position, id, description, quote, deadline, completed, notes, priority, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, pos, int64(t.ID), t.Description, t.Quote, deadline,
			boolToInt(t.Completed), t.Notes, t.Priority.String(), t.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return Snapshot{}, fmt.Errorf("insert task %d: %w", t.ID, err)
		}
		for sp, sub := range t.Subtasks {
			_, err := tx.Exec(
				`INSERT INTO subtasks (snapshot_id, task_id, position, description, completed)
				 VALUES (?, ?, ?, ?, ?)`,
				snap.ID, int64(t.ID), sp, sub.Description, boolToInt(sub.Completed),
			)
			if err != nil {
				return Snapshot{}, fmt.Errorf("insert subtask %d of task %d: %w", sp, t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

// Snapshots lists stored snapshots, oldest first.
func (w *SnapshotWriter) Snapshots() ([]Snapshot, error) {
	rows, err := w.db.Query(`
		SELECT s.id, s.taken_at, COUNT(t.id)
		FROM snapshots s LEFT JOIN tasks t ON t.snapshot_id = s.id
		GROUP BY s.id ORDER BY s.taken_at ASC, s.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var takenStr string
		if err := rows.Scan(&s.ID, &takenStr, &s.Tasks); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenStr)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Tasks returns the tasks of one snapshot in their original order.
func (w *SnapshotWriter) Tasks(snapshotID string) ([]model.Task, error) {
	rows, err := w.db.Query(
		`SELECT id, description, quote, deadline, completed, notes, priority, created_at
		 FROM tasks WHERE snapshot_id = ? ORDER BY position ASC`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		subs, err := w.subtasks(snapshotID, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subs
	}
	return tasks, nil
}

func (w *SnapshotWriter) subtasks(snapshotID string, taskID model.TaskID) ([]model.Subtask, error) {
	rows, err := w.db.Query(
		`SELECT description, completed FROM subtasks
		 WHERE snapshot_id = ? AND task_id = ? ORDER BY position ASC`, snapshotID, int64(taskID))
	if err != nil {
		return nil, fmt.Errorf("query subtasks of %d: %w", taskID, err)
	}
	defer rows.Close()

	var subs []model.Subtask
	for rows.Next() {
		var s model.Subtask
		var comp int
		if err := rows.Scan(&s.Description, &comp); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		s.Completed = comp != 0
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func scanTask(scanner interface{ Scan(...any) error }) (model.Task, error) {
	var t model.Task
	var id int64
	var comp int
	var deadline sql.NullString
	var priority, createdStr string
	if err := scanner.Scan(&id, &t.Description, &t.Quote, &deadline, &comp, &t.Notes, &priority, &createdStr); err != nil {
		return model.Task{}, err
	}
	t.ID = model.TaskID(id)
	t.Completed = comp != 0
	if deadline.Valid {
		d := deadline.String
		t.Deadline = &d
	}
	t.Priority, _ = model.ParsePriority(priority)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return t, nil
}

// Close closes the database connection.
func (w *SnapshotWriter) Close() error {
	return w.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
