package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/pairing"
	"github.com/hokkyo/riichi-league/repositories"
	"github.com/hokkyo/riichi-league/storage"
)

const backupTimeLayout = "2006-01-02_15-04-05"

type AdminService interface {
	Reset(ctx context.Context) error
	Export(ctx context.Context) (*models.Snapshot, error)
	Import(ctx context.Context, snapshot *models.Snapshot) error
	BackupSchedules(ctx context.Context) (*storage.UploadResult, error)
}

type adminService struct {
	playerRepo   repositories.PlayerRepository
	roundRepo    repositories.RoundRepository
	scheduleRepo repositories.ScheduleRepository
	gameService  GameService
	uploader     storage.FileUploader
	notifier     Notifier
	logger       *slog.Logger
	now          func() time.Time
}

func NewAdminService(
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	scheduleRepo repositories.ScheduleRepository,
	gameService GameService,
	uploader storage.FileUploader,
	notifier Notifier,
	logger *slog.Logger,
) AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		playerRepo:   playerRepo,
		roundRepo:    roundRepo,
		scheduleRepo: scheduleRepo,
		gameService:  gameService,
		uploader:     uploader,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Reset wipes the league back to a fresh season: default roster, no history,
// no schedules, and a newly paired round 1.
func (s *adminService) Reset(ctx context.Context) error {
	if err := s.playerRepo.SaveAll(ctx, models.DefaultRoster()); err != nil {
		return err
	}
	if err := s.roundRepo.SaveAll(ctx, []models.Round{}); err != nil {
		return err
	}
	if err := s.scheduleRepo.SaveAll(ctx, []models.Schedule{}); err != nil {
		return err
	}
	if err := s.roundRepo.SetCurrentRound(ctx, 1); err != nil {
		return err
	}
	if _, err := s.gameService.CreateRound(ctx, 1, pairing.PolicyScore); err != nil {
		return err
	}

	s.logger.Info("league reset to defaults")
	notify(s.notifier, EventStandingsUpdated, nil)
	return nil
}

// Export collects the complete league state into one snapshot. The four
// documents are independent, so they are fetched concurrently.
func (s *adminService) Export(ctx context.Context) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{ExportTime: s.now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := s.playerRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("export players: %w", err)
		}
		snapshot.Players = players
		return nil
	})
	g.Go(func() error {
		rounds, err := s.roundRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("export rounds: %w", err)
		}
		snapshot.Games = rounds
		return nil
	})
	g.Go(func() error {
		schedules, err := s.scheduleRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("export schedules: %w", err)
		}
		snapshot.Schedules = schedules
		return nil
	})
	g.Go(func() error {
		current, err := s.roundRepo.CurrentRound(gctx)
		if err != nil {
			return fmt.Errorf("export current round: %w", err)
		}
		snapshot.CurrentRound = &current
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Import restores state from a snapshot. Only the groups present in the
// snapshot are replaced; nil groups leave the stored state untouched.
func (s *adminService) Import(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("empty snapshot: %w", ErrValidationFailed)
	}

	if snapshot.Players != nil {
		if err := s.playerRepo.SaveAll(ctx, snapshot.Players); err != nil {
			return err
		}
	}
	if snapshot.Games != nil {
		if err := s.roundRepo.SaveAll(ctx, snapshot.Games); err != nil {
			return err
		}
	}
	if snapshot.Schedules != nil {
		if err := s.scheduleRepo.SaveAll(ctx, snapshot.Schedules); err != nil {
			return err
		}
	}
	if snapshot.CurrentRound != nil {
		if err := s.roundRepo.SetCurrentRound(ctx, *snapshot.CurrentRound); err != nil {
			return err
		}
	}

	s.logger.Info("snapshot imported",
		slog.Int("players", len(snapshot.Players)),
		slog.Int("rounds", len(snapshot.Games)))
	notify(s.notifier, EventStandingsUpdated, snapshot.Players)
	return nil
}

// BackupSchedules uploads every stored schedule as one timestamped JSON object.
func (s *adminService) BackupSchedules(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrBackupNotConfigured
	}

	schedules, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(struct {
		Schedules  []models.Schedule `json:"schedules"`
		BackupTime time.Time         `json:"backupTime"`
	}{schedules, s.now()})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("backups/schedule-backup_%s.json", s.now().Format(backupTimeLayout))
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedules backed up",
		slog.String("key", result.Key),
		slog.Int("schedules", len(schedules)))
	return result, nil
}
