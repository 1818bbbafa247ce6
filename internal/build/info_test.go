package build

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := String()

	assert.Contains(t, s, Version)
	assert.Contains(t, s, CommitSHA)
	assert.Contains(t, s, BuildDate)
	assert.Contains(t, s, runtime.Version())
}
