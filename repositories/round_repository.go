package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hokkyo/riichi-league/models"
)

var ErrRoundNotFound = errors.New("round not found")

type RoundRepository interface {
	List(ctx context.Context) ([]models.Round, error)
	SaveAll(ctx context.Context, rounds []models.Round) error
	GetByNumber(ctx context.Context, number int) (*models.Round, error)
	// Save upserts by round number.
	Save(ctx context.Context, round models.Round) error
	CurrentRound(ctx context.Context) (int, error)
	SetCurrentRound(ctx context.Context, number int) error
}

type kvRoundRepository struct {
	store kvStore
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &kvRoundRepository{store: documentStore{db: db}}
}

func NewMemoryRoundRepository() RoundRepository {
	return &kvRoundRepository{store: newMemoryStore()}
}

func (r *kvRoundRepository) List(ctx context.Context) ([]models.Round, error) {
	var rounds []models.Round
	if _, err := r.store.get(ctx, docGames, &rounds); err != nil {
		return nil, err
	}
	// Versioned-load step: older stored rounds may predate the score and
	// rating fields.
	for i := range rounds {
		rounds[i] = models.NormalizeRound(rounds[i])
	}
	if rounds == nil {
		rounds = []models.Round{}
	}
	return rounds, nil
}

func (r *kvRoundRepository) SaveAll(ctx context.Context, rounds []models.Round) error {
	return r.store.set(ctx, docGames, rounds)
}

func (r *kvRoundRepository) GetByNumber(ctx context.Context, number int) (*models.Round, error) {
	rounds, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rounds {
		if rounds[i].Number == number {
			return &rounds[i], nil
		}
	}
	return nil, fmt.Errorf("round %d: %w", number, ErrRoundNotFound)
}

func (r *kvRoundRepository) Save(ctx context.Context, round models.Round) error {
	rounds, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range rounds {
		if rounds[i].Number == round.Number {
			rounds[i] = round
			replaced = true
			break
		}
	}
	if !replaced {
		rounds = append(rounds, round)
	}
	return r.SaveAll(ctx, rounds)
}

func (r *kvRoundRepository) CurrentRound(ctx context.Context) (int, error) {
	var number int
	ok, err := r.store.get(ctx, docCurrentRound, &number)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return number, nil
}

func (r *kvRoundRepository) SetCurrentRound(ctx context.Context, number int) error {
	return r.store.set(ctx, docCurrentRound, number)
}
