package learners_test

import (
	"testing"

	"gotest.tools/assert"

	_ "go-ml.dev/pkg/tune/learners"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

func Test_Registry(t *testing.T) {
	assert.DeepEqual(t, model.Names(), []string{"ada", "cart", "forest", "knn", "svm"})
	_, err := model.Lookup("nosuch")
	assert.ErrorContains(t, err, "unknown learner family")
}

func Test_DefaultSpacesAreSane(t *testing.T) {
	for _, name := range model.Names() {
		family, err := model.Lookup(name)
		assert.NilError(t, err)
		sp := family.Space()
		assert.Assert(t, sp.Len() > 0)
		for _, p := range sp.Params() {
			if p.Kind != space.Categorical {
				assert.Assert(t, p.Min <= p.Max)
			}
		}
	}
}

// Every family trained with its defaults should beat chance comfortably
// on well-separated blobs.
func Test_FamiliesLearnSeparableData(t *testing.T) {
	task := tasks.Synthetic(240, 4, 1)
	train, test, err := task.Split(0.25, 7)
	assert.NilError(t, err)
	for _, name := range model.Names() {
		family, err := model.Lookup(name)
		assert.NilError(t, err)
		learner, err := family.Factory(space.Assignment{})
		assert.NilError(t, err)
		fitted, err := learner.Fit(task, train)
		assert.NilError(t, err)
		prob := fitted.Prob(task, test)
		assert.Equal(t, len(prob), len(test))
		acc := model.Accuracy.Score(prob, task.Labels(test))
		assert.Assert(t, acc > 0.75, "family %s: accuracy %v", name, acc)
	}
}

func Test_FactoryValidation(t *testing.T) {
	knn, _ := model.Lookup("knn")
	_, err := knn.Factory(space.Assignment{"k": space.Number(0)})
	assert.ErrorContains(t, err, "k must be positive")
	_, err = knn.Factory(space.Assignment{"distance": space.Level("cosine")})
	assert.ErrorContains(t, err, "unknown distance")

	svm, _ := model.Lookup("svm")
	_, err = svm.Factory(space.Assignment{"kernel": space.Level("poly")})
	assert.ErrorContains(t, err, "unknown kernel")
	_, err = svm.Factory(space.Assignment{"cost": space.Number(-1)})
	assert.ErrorContains(t, err, "cost must be positive")

	cart, _ := model.Lookup("cart")
	_, err = cart.Factory(space.Assignment{"maxdepth": space.Number(0)})
	assert.ErrorContains(t, err, "maxdepth must be positive")
}

// A radial-kernel assignment drawn from the default svm space always
// carries an active positive gamma after transforms.
func Test_SVMConditionalGamma(t *testing.T) {
	svm, _ := model.Lookup("svm")
	sp := svm.Space()
	raw := space.Assignment{
		"cost":   space.Number(1),
		"kernel": space.Level("radial"),
		"gamma":  space.Number(-2),
	}
	params := sp.Transformed(raw)
	assert.Equal(t, params.Float("gamma", 0), 0.25)
	learner, err := svm.Factory(params)
	assert.NilError(t, err)
	assert.Assert(t, learner != nil)

	// with a linear kernel gamma stays inactive and the factory
	// falls back to its default without complaint
	raw = space.Assignment{
		"cost":   space.Number(1),
		"kernel": space.Level("linear"),
		"gamma":  space.Inactive(),
	}
	_, err = svm.Factory(sp.Transformed(raw))
	assert.NilError(t, err)
}
