package stem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordReducesToRoot(t *testing.T) {
	assert.Equal(t, "run", Word("running"))
	assert.Equal(t, "connect", Word("connection"))
}

func TestWordLeavesRootUnchanged(t *testing.T) {
	assert.Equal(t, "cat", Word("cat"))
}
