package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/repositories"
)

type HistoryService interface {
	ListCompletedRounds(ctx context.Context) ([]models.Round, error)
	UpdateTableRecord(ctx context.Context, roundNumber, tableID int, scores map[int]models.Score, ratings map[int]string, recordURL string) error
	RecomputeStandings(ctx context.Context) ([]models.Player, error)
}

type historyService struct {
	mu         sync.Mutex
	playerRepo repositories.PlayerRepository
	roundRepo  repositories.RoundRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewHistoryService(
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	notifier Notifier,
	logger *slog.Logger,
) HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &historyService{
		playerRepo: playerRepo,
		roundRepo:  roundRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *historyService) ListCompletedRounds(ctx context.Context) ([]models.Round, error) {
	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	completed := make([]models.Round, 0, len(rounds))
	for _, r := range rounds {
		if r.IsCompleted {
			completed = append(completed, r)
		}
	}
	return completed, nil
}

// UpdateTableRecord rewrites one historical table's scores, ratings and record
// URL, then rebuilds every player's total from the full round history.
func (s *historyService) UpdateTableRecord(ctx context.Context, roundNumber, tableID int, scores map[int]models.Score, ratings map[int]string, recordURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.roundRepo.GetByNumber(ctx, roundNumber)
	if err != nil {
		return err
	}

	found := false
	for ti := range round.Tables {
		table := &round.Tables[ti]
		if table.TableID != tableID {
			continue
		}
		table.Scores = scores
		table.Ratings = ratings
		table.RecordURL = recordURL
		found = true
		break
	}
	if !found {
		return fmt.Errorf("table %d in round %d: %w", tableID, roundNumber, ErrTableNotFound)
	}

	if err := s.roundRepo.Save(ctx, *round); err != nil {
		return err
	}

	players, err := s.recomputeTotals(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("historical record updated",
		slog.Int("round", roundNumber),
		slog.Int("table", tableID))
	notify(s.notifier, EventRoundUpdated, *round)
	notify(s.notifier, EventStandingsUpdated, players)
	return nil
}

// RecomputeStandings rebuilds all totals from history and persists the roster.
func (s *historyService) RecomputeStandings(ctx context.Context) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeTotals(ctx)
}

func (s *historyService) recomputeTotals(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	RecomputeTotals(players, rounds)

	if err := s.playerRepo.SaveAll(ctx, players); err != nil {
		return nil, err
	}
	return players, nil
}

// RecomputeTotals rebuilds every player's total score from scratch: the sum of
// that player's score in every table of every completed round, with absent
// entries counting zero. History edits always go through a full resum; a
// per-edit delta would drift under repeated edits.
func RecomputeTotals(players []models.Player, rounds []models.Round) {
	for i := range players {
		var total models.Score
		for _, round := range rounds {
			if !round.IsCompleted {
				continue
			}
			for _, table := range round.Tables {
				if score, ok := table.Scores[players[i].ID]; ok {
					total += score
				}
			}
		}
		players[i].TotalScore = total
	}
}
