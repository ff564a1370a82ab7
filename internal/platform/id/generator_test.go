package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	_, err = uuid.Parse(first)
	assert.NoError(t, err)
}

func TestSequence_Exhausts(t *testing.T) {
	seq := NewSequence("op-1")

	got, err := seq.NewID()
	require.NoError(t, err)
	assert.Equal(t, "op-1", got)

	_, err = seq.NewID()
	assert.Error(t, err)
}
