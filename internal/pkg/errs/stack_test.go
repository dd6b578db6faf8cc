//go:build unit

package errs_test

import (
	"testing"

	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestExtractStackLines(t *testing.T) {
	err := errs.Wrap(errs.New("disk full"), "save booking")

	lines := errs.ExtractStackLines(err, 3)
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "save booking: disk full")

	assert.Greater(t, len(errs.ExtractStackLines(err, 0)), 3, "zero keeps the whole trace")
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
