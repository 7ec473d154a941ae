package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hokkyo/riichi-league/models"
)

var ErrScheduleNotFound = errors.New("schedule not found")

type ScheduleRepository interface {
	ListAll(ctx context.Context) ([]models.Schedule, error)
	SaveAll(ctx context.Context, schedules []models.Schedule) error
	GetByPlayer(ctx context.Context, playerID int) (*models.Schedule, error)
	// Save upserts by player id.
	Save(ctx context.Context, schedule models.Schedule) error
}

type kvScheduleRepository struct {
	store kvStore
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &kvScheduleRepository{store: documentStore{db: db}}
}

func NewMemoryScheduleRepository() ScheduleRepository {
	return &kvScheduleRepository{store: newMemoryStore()}
}

func (r *kvScheduleRepository) ListAll(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if _, err := r.store.get(ctx, docSchedules, &schedules); err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

func (r *kvScheduleRepository) SaveAll(ctx context.Context, schedules []models.Schedule) error {
	return r.store.set(ctx, docSchedules, schedules)
}

func (r *kvScheduleRepository) GetByPlayer(ctx context.Context, playerID int) (*models.Schedule, error) {
	schedules, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		if schedules[i].PlayerID == playerID {
			return &schedules[i], nil
		}
	}
	return nil, fmt.Errorf("schedule for player %d: %w", playerID, ErrScheduleNotFound)
}

func (r *kvScheduleRepository) Save(ctx context.Context, schedule models.Schedule) error {
	schedules, err := r.ListAll(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range schedules {
		if schedules[i].PlayerID == schedule.PlayerID {
			schedules[i] = schedule
			replaced = true
			break
		}
	}
	if !replaced {
		schedules = append(schedules, schedule)
	}
	return r.SaveAll(ctx, schedules)
}
