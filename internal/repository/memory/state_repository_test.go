package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateRepository_ConsumeIsSingleUse(t *testing.T) {
	repo := NewStateRepository()

	repo.Save("nonce-a")

	assert.True(t, repo.Consume("nonce-a"))
	assert.False(t, repo.Consume("nonce-a"), "a consumed state must not validate again")
}

func TestStateRepository_UnknownStateIsRejected(t *testing.T) {
	repo := NewStateRepository()

	assert.False(t, repo.Consume("never-issued"))
}

func TestStateRepository_StatesAreIndependent(t *testing.T) {
	repo := NewStateRepository()

	repo.Save("nonce-a")
	repo.Save("nonce-b")

	assert.True(t, repo.Consume("nonce-b"))
	assert.True(t, repo.Consume("nonce-a"), "consuming one state leaves others intact")
}
