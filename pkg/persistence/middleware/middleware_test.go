package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/aretw0/actiongraph/pkg/adapters/memory"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/persistence/middleware"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func sample() *domain.Snapshot {
	return &domain.Snapshot{
		Graph:   "door",
		State:   "open",
		TakenAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Cells: []domain.CellSnapshot{
			{Socket: "password", Type: domain.TypeInt, Value: 1234},
			{Node: "slide", Socket: "Value", Type: domain.TypeFloat, Value: 1.5},
			{Node: "login", Socket: "Token", Type: domain.TypeInt, Value: 99},
		},
	}
}

func encrypted(t *testing.T, cfg middleware.EncryptionConfig, next ports.SnapshotStore) ports.SnapshotStore {
	t.Helper()
	mw, err := middleware.NewEncryption(cfg)
	require.NoError(t, err)
	return mw(next)
}

func TestEncryption_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, memory.NewStore()))
}

func TestEncryption_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	secure := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)

	require.NoError(t, secure.Save(ctx, "s1", sample()))

	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, stored.Cells, "cells must only live in the ciphertext")
	assert.Empty(t, stored.State)
	assert.Equal(t, "door", stored.Graph)
	assert.NotEmpty(t, stored.Sealed)

	loaded, err := secure.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sample().Cells, loaded.Cells)
	assert.Equal(t, "open", loaded.State)
}

func TestEncryption_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	require.NoError(t, encrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey}, underlying).Save(ctx, "s1", sample()))

	rotated := encrypted(t, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}}, underlying)
	loaded, err := rotated.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "open", loaded.State)

	_, err = encrypted(t, middleware.EncryptionConfig{ActiveKey: newKey}, underlying).Load(ctx, "s1")
	assert.Error(t, err, "a key that never sealed the snapshot cannot open it")
}

func TestEncryption_Rejects(t *testing.T) {
	_, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)
	_, err = middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: generateKey(t), FallbackKeys: [][]byte{{1}}})
	assert.Error(t, err)

	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, "plain", sample()))
	_, err = encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying).Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestRedaction(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewRedaction([]string{"^password$", `\.Token$`})
	require.NoError(t, err)
	store := mw(underlying)

	snap := sample()
	require.NoError(t, store.Save(ctx, "s1", snap))
	assert.Len(t, snap.Cells, 3, "the caller's snapshot is untouched")

	loaded, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded.Cells, 1)
	assert.Equal(t, "slide", loaded.Cells[0].Node)

	_, err = middleware.NewRedaction([]string{"("})
	assert.Error(t, err)
}

func TestChain_RedactsBeforeSealing(t *testing.T) {
	ctx := context.Background()
	key := generateKey(t)
	enc, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: key})
	require.NoError(t, err)
	red, err := middleware.NewRedaction([]string{"password"})
	require.NoError(t, err)

	store := middleware.Chain(memory.NewStore(), red, enc)
	require.NoError(t, store.Save(ctx, "s1", sample()))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, loaded.Cells, 2)
}
