package tune

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/fu"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	task       TEXT NOT NULL,
	learner    TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trials (
	run_id  TEXT NOT NULL,
	trial   INTEGER NOT NULL,
	raw     TEXT NOT NULL,
	params  TEXT NOT NULL,
	score   REAL NOT NULL,
	PRIMARY KEY (run_id, trial),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

/*
Journal persists every evaluated trial of a tuning run into a SQLite
database, one run per Train call, so search traces survive the process
and can be inspected later
*/
type Journal struct {
	db *sql.DB
}

/*
OpenJournal opens or creates a journal database at the given path
*/
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Wrapf(err, "opening journal: %v", err.Error())
	}
	if _, err := db.Exec(journalSchema); err != nil {
		return nil, zorros.Wrapf(err, "migrating journal: %v", err.Error())
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

/*
Record stores the trials of one tuning run and returns the new run id
*/
func (j *Journal) Record(task, learner string, trials []Trial) (string, error) {
	runID := uuid.New().String()
	tx, err := j.db.Begin()
	if err != nil {
		return "", zorros.Trace(err)
	}
	defer tx.Rollback()
	_, err = tx.Exec(
		`INSERT INTO runs (run_id, task, learner, created_at) VALUES (?, ?, ?, ?)`,
		runID, task, learner, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", zorros.Trace(err)
	}
	for _, t := range trials {
		raw, err := json.Marshal(t.Raw)
		if err != nil {
			return "", zorros.Trace(err)
		}
		params, err := json.Marshal(t.Params)
		if err != nil {
			return "", zorros.Trace(err)
		}
		_, err = tx.Exec(
			`INSERT INTO trials (run_id, trial, raw, params, score) VALUES (?, ?, ?, ?, ?)`,
			runID, t.Index, string(raw), string(params), t.Score)
		if err != nil {
			return "", zorros.Trace(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", zorros.Trace(err)
	}
	return runID, nil
}

/*
Trials reads back the trials of a run in evaluation order
*/
func (j *Journal) Trials(runID string) ([]Trial, error) {
	rows, err := j.db.Query(
		`SELECT trial, raw, params, score FROM trials WHERE run_id = ? ORDER BY trial`, runID)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var r []Trial
	for rows.Next() {
		var t Trial
		var raw, params string
		if err := rows.Scan(&t.Index, &raw, &params, &t.Score); err != nil {
			return nil, zorros.Trace(err)
		}
		if err := json.Unmarshal([]byte(raw), &t.Raw); err != nil {
			return nil, zorros.Trace(err)
		}
		if err := json.Unmarshal([]byte(params), &t.Params); err != nil {
			return nil, zorros.Trace(err)
		}
		r = append(r, t)
	}
	if err := rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	if len(r) == 0 {
		return nil, zorros.Errorf("journal has no run `%v`", runID)
	}
	return r, nil
}

/*
Best returns the best recorded trial of a run per the measure direction,
ties resolved by trial order
*/
func (j *Journal) Best(runID string, minimize bool) (Trial, error) {
	trials, err := j.Trials(runID)
	if err != nil {
		return Trial{}, err
	}
	scores := make([]float64, len(trials))
	for i, t := range trials {
		scores[i] = t.Score
	}
	if minimize {
		return trials[fu.Indmind(scores)], nil
	}
	return trials[fu.Indmaxd(scores)], nil
}
