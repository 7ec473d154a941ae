package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/repositories"
)

const maxPlayerNameLength = 50

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	Get(ctx context.Context, id int) (*models.Player, error)
	Rename(ctx context.Context, id int, name string) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, notifier Notifier, logger *slog.Logger) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		playerRepo: playerRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) Get(ctx context.Context, id int) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) Rename(ctx context.Context, id int, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if utf8.RuneCountInString(name) > maxPlayerNameLength {
		return nil, fmt.Errorf("%w (max %d characters)", ErrPlayerNameTooLong, maxPlayerNameLength)
	}

	if err := s.playerRepo.Update(ctx, id, func(p *models.Player) {
		p.Name = name
	}); err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("player renamed", slog.Int("player_id", id), slog.String("name", name))
	notify(s.notifier, EventStandingsUpdated, player)
	return player, nil
}
