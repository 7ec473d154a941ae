package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/repositories"
)

func newPlayerService(t *testing.T) (PlayerService, repositories.PlayerRepository) {
	t.Helper()
	repo := repositories.NewMemoryPlayerRepository()
	require.NoError(t, repo.SaveAll(context.Background(), models.DefaultRoster()))
	return NewPlayerService(repo, nil, nil), repo
}

func TestRenamePlayer(t *testing.T) {
	svc, repo := newPlayerService(t)
	ctx := context.Background()

	player, err := svc.Rename(ctx, 3, "  Washizu  ")
	require.NoError(t, err)
	assert.Equal(t, "Washizu", player.Name)

	stored, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Washizu", stored.Name)
}

func TestRenameValidation(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	_, err := svc.Rename(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	_, err = svc.Rename(ctx, 1, strings.Repeat("x", maxPlayerNameLength+1))
	assert.ErrorIs(t, err, ErrPlayerNameTooLong)

	_, err = svc.Rename(ctx, 99, "Akagi")
	assert.ErrorIs(t, err, repositories.ErrPlayerNotFound)
}
