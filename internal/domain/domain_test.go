package domain

import (
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCardIsSuspended(t *testing.T) {
	card := &Card{Queue: model.QueueSuspended}
	assert.True(t, card.IsSuspended())

	for _, queue := range []int{model.QueueNew, model.QueueLearning, model.QueueReview} {
		card.Queue = queue
		assert.False(t, card.IsSuspended(), "queue %d", queue)
	}
}
