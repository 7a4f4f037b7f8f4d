package client

import (
	"testing"

	"organizer/internal/domain/progress"
	"organizer/internal/domain/record"

	"github.com/stretchr/testify/assert"
)

func TestRewardFor(t *testing.T) {
	for _, kind := range record.Kinds() {
		action, amount, ok := RewardFor(kind)
		assert.True(t, ok, kind)
		assert.NoError(t, action.Validate())
		assert.NoError(t, progress.ValidateAmount(amount))
	}

	_, _, ok := RewardFor(record.Kind("recipe"))
	assert.False(t, ok)
}
