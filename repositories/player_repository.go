package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hokkyo/riichi-league/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	List(ctx context.Context) ([]models.Player, error)
	SaveAll(ctx context.Context, players []models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Update(ctx context.Context, id int, apply func(*models.Player)) error
}

type kvPlayerRepository struct {
	store kvStore
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &kvPlayerRepository{store: documentStore{db: db}}
}

func NewMemoryPlayerRepository() PlayerRepository {
	return &kvPlayerRepository{store: newMemoryStore()}
}

func (r *kvPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if _, err := r.store.get(ctx, docPlayers, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []models.Player{}
	}
	return players, nil
}

func (r *kvPlayerRepository) SaveAll(ctx context.Context, players []models.Player) error {
	return r.store.set(ctx, docPlayers, players)
}

func (r *kvPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].ID == id {
			return &players[i], nil
		}
	}
	return nil, fmt.Errorf("player %d: %w", id, ErrPlayerNotFound)
}

// Update applies a partial mutation to one player and writes the roster back.
func (r *kvPlayerRepository) Update(ctx context.Context, id int, apply func(*models.Player)) error {
	players, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range players {
		if players[i].ID == id {
			apply(&players[i])
			return r.SaveAll(ctx, players)
		}
	}
	return fmt.Errorf("player %d: %w", id, ErrPlayerNotFound)
}
