package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_NewEmail_PersistsOneRecord(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	c, err := svc.Register(context.Background(), "Ana", "ana@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, 1, store.Len())

	got, err := store.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestRegister_DuplicateEmail_FailsAndPersistsNothing(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Ana", "ana@example.com")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_FindByID_Unknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FindByID(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}
