package learners_test

import (
	"bytes"
	"testing"

	"gotest.tools/assert"

	_ "go-ml.dev/pkg/tune/learners"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

func Test_MemorizeRecall(t *testing.T) {
	task := tasks.Synthetic(120, 3, 3)
	train, test, err := task.Split(0.25, 5)
	assert.NilError(t, err)

	for _, name := range []string{"knn", "cart", "svm"} {
		family, err := model.Lookup(name)
		assert.NilError(t, err)
		learner, err := family.Factory(space.Assignment{})
		assert.NilError(t, err)
		fitted, err := learner.Fit(task, train)
		assert.NilError(t, err)

		var buf bytes.Buffer
		assert.NilError(t, model.Memorize(&buf, fitted))
		recalled, err := model.Recall(&buf)
		assert.NilError(t, err)

		want := fitted.Prob(task, test)
		got := recalled.Prob(task, test)
		assert.DeepEqual(t, got, want)
	}
}
