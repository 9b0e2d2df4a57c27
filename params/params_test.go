package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIsDeterministic(t *testing.T) {
	a := Default()
	b := Default()

	assert := assert.New(t)
	assert.Zero(a.Compare(b))

	b.BeamSize = a.BeamSize + 1
	assert.Negative(a.Compare(b))
	assert.Positive(b.Compare(a))

	c := Default()
	c.NewVoiceProbability = a.NewVoiceProbability * 2
	assert.Negative(a.Compare(c))
	assert.Positive(c.Compare(a))
}
