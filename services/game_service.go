package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/pairing"
	"github.com/hokkyo/riichi-league/repositories"
)

// SubmitOptions carries the optional parts of a result submission: per-table
// ratings and record URLs, plus the flag deciding whether the round is sealed
// and the next one paired.
type SubmitOptions struct {
	Ratings    map[int]map[int]string
	RecordURLs map[int]string
	Advance    bool
}

type GameService interface {
	ListRounds(ctx context.Context) ([]models.Round, error)
	CurrentRoundNumber(ctx context.Context) (int, error)
	CurrentRound(ctx context.Context) (*models.Round, error)
	CreateRound(ctx context.Context, number int, policy string) (*models.Round, error)
	RegroupCurrentRound(ctx context.Context, policy string) (*models.Round, error)
	SubmitResults(ctx context.Context, scores map[int]models.Score, opts SubmitOptions) error
}

type gameService struct {
	// Guards read-modify-write cycles across the player and round documents
	// so concurrent submissions cannot interleave.
	mu sync.Mutex

	playerRepo repositories.PlayerRepository
	roundRepo  repositories.RoundRepository
	rng        *rand.Rand
	notifier   Notifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewGameService(
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	rng *rand.Rand,
	notifier Notifier,
	logger *slog.Logger,
) GameService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &gameService{
		playerRepo: playerRepo,
		roundRepo:  roundRepo,
		rng:        rng,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *gameService) ListRounds(ctx context.Context) ([]models.Round, error) {
	return s.roundRepo.List(ctx)
}

func (s *gameService) CurrentRoundNumber(ctx context.Context) (int, error) {
	return s.roundRepo.CurrentRound(ctx)
}

func (s *gameService) CurrentRound(ctx context.Context) (*models.Round, error) {
	number, err := s.roundRepo.CurrentRound(ctx)
	if err != nil {
		return nil, err
	}
	round, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, fmt.Errorf("round %d: %w", number, ErrNoCurrentRound)
		}
		return nil, err
	}
	return round, nil
}

func (s *gameService) CreateRound(ctx context.Context, number int, policy string) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createRound(ctx, number, policy)
}

func (s *gameService) createRound(ctx context.Context, number int, policy string) (*models.Round, error) {
	arranger, err := pairing.Get(policy)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	round := models.Round{
		Number:    number,
		Tables:    arranger.Arrange(pairing.ArrangeParams{Players: players}, s.rng),
		CreatedAt: s.now(),
	}
	if err := s.roundRepo.Save(ctx, round); err != nil {
		return nil, err
	}

	s.logger.Info("round created",
		slog.Int("round", number),
		slog.String("policy", arranger.GetName()),
		slog.Int("tables", len(round.Tables)))
	notify(s.notifier, EventRoundUpdated, round)
	return &round, nil
}

// RegroupCurrentRound re-pairs the open round under the given policy. Recorded
// scores are untouched; only the seating changes.
func (s *gameService) RegroupCurrentRound(ctx context.Context, policy string) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.CurrentRound(ctx)
	if err != nil {
		return nil, err
	}
	if round.IsCompleted {
		return nil, fmt.Errorf("round %d: %w", round.Number, ErrRoundCompleted)
	}

	arranger, err := pairing.Get(policy)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	round.Tables = arranger.Arrange(pairing.ArrangeParams{Players: players}, s.rng)
	if err := s.roundRepo.Save(ctx, *round); err != nil {
		return nil, err
	}

	s.logger.Info("round regrouped", slog.Int("round", round.Number), slog.String("policy", policy))
	notify(s.notifier, EventRoundUpdated, *round)
	return round, nil
}

// SubmitResults applies one round's results. Every roster player receives the
// submitted score (absent players score zero), table records are replaced
// wholesale, and when opts.Advance is set the round is sealed and the next
// round is paired from the updated standings under the score-banded policy.
func (s *gameService) SubmitResults(ctx context.Context, scores map[int]models.Score, opts SubmitOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.CurrentRound(ctx)
	if err != nil {
		return err
	}
	if round.IsCompleted {
		return fmt.Errorf("round %d: %w", round.Number, ErrRoundCompleted)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return err
	}
	for i := range players {
		score := scores[players[i].ID]
		players[i].Scores = append(players[i].Scores, score)
		players[i].TotalScore += score
		if opts.Advance {
			// Availability is collected fresh for every round.
			players[i].HasFilledSchedule = false
		}
	}

	for ti := range round.Tables {
		table := &round.Tables[ti]
		table.Scores = make(map[int]models.Score, len(table.Players))
		table.Ratings = make(map[int]string, len(table.Players))
		table.RecordURL = opts.RecordURLs[table.TableID]
		for _, id := range table.Players {
			table.Scores[id] = scores[id]
			table.Ratings[id] = opts.Ratings[table.TableID][id]
		}
	}
	if opts.Advance {
		round.IsCompleted = true
	}

	if err := s.playerRepo.SaveAll(ctx, players); err != nil {
		return err
	}
	if err := s.roundRepo.Save(ctx, *round); err != nil {
		return err
	}

	notify(s.notifier, EventRoundUpdated, *round)
	notify(s.notifier, EventStandingsUpdated, players)

	if !opts.Advance {
		s.logger.Info("round results recorded, round left open", slog.Int("round", round.Number))
		return nil
	}

	if round.Number >= models.MaxRounds {
		s.logger.Info("season complete", slog.Int("rounds", round.Number))
		return nil
	}

	next := round.Number + 1
	if err := s.roundRepo.SetCurrentRound(ctx, next); err != nil {
		return err
	}
	if _, err := s.createRound(ctx, next, pairing.PolicyScore); err != nil {
		return fmt.Errorf("failed to pair round %d: %w", next, err)
	}
	s.logger.Info("round advanced", slog.Int("completed", round.Number), slog.Int("current", next))
	return nil
}
