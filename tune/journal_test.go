package tune_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	_ "go-ml.dev/pkg/tune/learners"
	"go-ml.dev/pkg/tune/tasks"
	"go-ml.dev/pkg/tune/tune"
)

func Test_Journal(t *testing.T) {
	dir, err := ioutil.TempDir("", "tune-journal-*")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	j, err := tune.OpenJournal(filepath.Join(dir, "trials.db"))
	assert.NilError(t, err)
	defer j.Close()

	task := tasks.Synthetic(120, 3, 5)
	at := knnTuner(t)
	at.Budget = 8
	at.Journal = j
	assert.NilError(t, at.Train(task, task.Rows()))

	r := at.Result()
	assert.Assert(t, r.RunID != "")

	trials, err := j.Trials(r.RunID)
	assert.NilError(t, err)
	assert.Equal(t, len(trials), 8)
	for i, tr := range trials {
		assert.Equal(t, tr.Index, i)
		k := tr.Raw.Int("k", 0)
		assert.Assert(t, k >= 3 && k <= 51)
	}

	best, err := j.Best(r.RunID, true)
	assert.NilError(t, err)
	assert.Equal(t, best.Score, r.Score)
	assert.Equal(t, best.Raw.Int("k", 0), r.Raw.Int("k", 0))

	_, err = j.Trials("nosuch")
	assert.ErrorContains(t, err, "no run")
}
