//go:build unit

package request_test

import (
	"strings"
	"testing"
	"time"

	"shareit/internal/domain/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRequest(t *testing.T) {
	now := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		description string
		errIs       error
	}{
		{name: "valid", description: "Need a ladder"},
		{name: "max length", description: strings.Repeat("x", request.MaxDescriptionLength)},
		{name: "blank", description: "  ", errIs: request.ErrEmptyDescription},
		{name: "too long", description: strings.Repeat("x", request.MaxDescriptionLength+1), errIs: request.ErrDescriptionTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := request.NewItemRequest(7, tc.description, now)
			if tc.errIs != nil {
				require.Nil(t, r)
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), r.RequesterID())
			assert.Equal(t, now, r.CreatedAt())
			assert.Zero(t, r.ID())
		})
	}
}
