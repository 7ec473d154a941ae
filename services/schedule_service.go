package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/repositories"
)

// ScheduleWindowDays is the rolling forward window of dates players can mark
// and tables can be scheduled in.
const ScheduleWindowDays = 7

type ScheduleService interface {
	ListAll(ctx context.Context) ([]models.Schedule, error)
	PlayerSchedule(ctx context.Context, playerID int) (*models.Schedule, error)
	SavePlayerSchedule(ctx context.Context, playerID int, slotKeys []string) (*models.Schedule, error)
	ToggleSlot(ctx context.Context, playerID int, slot models.TimeSlot) (*models.Schedule, error)
	CommonSlots(ctx context.Context, playerIDs []int) ([]models.TimeSlot, error)
	RefreshCommonTimes(ctx context.Context) error
}

type scheduleService struct {
	playerRepo   repositories.PlayerRepository
	scheduleRepo repositories.ScheduleRepository
	roundRepo    repositories.RoundRepository
	notifier     Notifier
	logger       *slog.Logger
	now          func() time.Time
}

func NewScheduleService(
	playerRepo repositories.PlayerRepository,
	scheduleRepo repositories.ScheduleRepository,
	roundRepo repositories.RoundRepository,
	notifier Notifier,
	logger *slog.Logger,
) ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		playerRepo:   playerRepo,
		scheduleRepo: scheduleRepo,
		roundRepo:    roundRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *scheduleService) ListAll(ctx context.Context) ([]models.Schedule, error) {
	return s.scheduleRepo.ListAll(ctx)
}

// PlayerSchedule returns the player's stored schedule, creating an empty one
// lazily. Legacy relative-day slot keys are migrated to dated keys on load and
// written back when anything changed.
func (s *scheduleService) PlayerSchedule(ctx context.Context, playerID int) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return &models.Schedule{
				PlayerID:       playerID,
				AvailableTimes: []string{},
				UpdatedAt:      s.now(),
			}, nil
		}
		return nil, err
	}

	migrated, changed := s.migrateSlotKeys(schedule.AvailableTimes)
	if changed {
		schedule.AvailableTimes = migrated
		if err := s.scheduleRepo.Save(ctx, *schedule); err != nil {
			return nil, err
		}
		s.logger.Info("migrated legacy slot keys", slog.Int("player_id", playerID))
	}
	return schedule, nil
}

// migrateSlotKeys canonicalizes stored keys, resolving legacy relative-day
// forms against today and dropping keys that no longer parse.
func (s *scheduleService) migrateSlotKeys(keys []string) ([]string, bool) {
	out := make([]string, 0, len(keys))
	changed := false
	for _, key := range keys {
		slot, err := models.ParseSlotKey(key, s.now())
		if err != nil {
			changed = true
			continue
		}
		if slot.Key() != key {
			changed = true
		}
		out = append(out, slot.Key())
	}
	return out, changed
}

// SavePlayerSchedule replaces the player's slot set wholesale, updates the
// player's filled flag, and refreshes the common times of every table in the
// current round.
func (s *scheduleService) SavePlayerSchedule(ctx context.Context, playerID int, slotKeys []string) (*models.Schedule, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	schedule := models.Schedule{
		PlayerID:       playerID,
		AvailableTimes: slotKeys,
		UpdatedAt:      s.now(),
	}
	if schedule.AvailableTimes == nil {
		schedule.AvailableTimes = []string{}
	}
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	filled := len(schedule.AvailableTimes) > 0
	if err := s.playerRepo.Update(ctx, playerID, func(p *models.Player) {
		p.HasFilledSchedule = filled
	}); err != nil {
		return nil, err
	}

	if err := s.RefreshCommonTimes(ctx); err != nil {
		return nil, err
	}

	notify(s.notifier, EventScheduleUpdated, schedule)
	return &schedule, nil
}

// ToggleSlot flips membership of a single slot and re-saves the whole set. It
// deliberately does not refresh table common times; callers batch that.
func (s *scheduleService) ToggleSlot(ctx context.Context, playerID int, slot models.TimeSlot) (*models.Schedule, error) {
	schedule, err := s.PlayerSchedule(ctx, playerID)
	if err != nil {
		return nil, err
	}

	key := slot.Key()
	kept := make([]string, 0, len(schedule.AvailableTimes)+1)
	removed := false
	for _, k := range schedule.AvailableTimes {
		if k == key {
			removed = true
			continue
		}
		kept = append(kept, k)
	}
	if !removed {
		kept = append(kept, key)
	}

	schedule.AvailableTimes = kept
	schedule.UpdatedAt = s.now()
	if err := s.scheduleRepo.Save(ctx, *schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CommonSlots intersects the stored slot sets of the given players. The result
// is empty unless every player has a stored schedule, covers only the rolling
// 7-day window, and is ordered by date then morning < afternoon < evening.
func (s *scheduleService) CommonSlots(ctx context.Context, playerIDs []int) ([]models.TimeSlot, error) {
	now := s.now()

	sets := make([]map[string]models.TimeSlot, 0, len(playerIDs))
	for _, id := range playerIDs {
		schedule, err := s.scheduleRepo.GetByPlayer(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrScheduleNotFound) {
				return []models.TimeSlot{}, nil
			}
			return nil, err
		}
		set := make(map[string]models.TimeSlot, len(schedule.AvailableTimes))
		for _, key := range schedule.AvailableTimes {
			slot, err := models.ParseSlotKey(key, now)
			if err != nil {
				continue
			}
			set[slot.Key()] = slot
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return []models.TimeSlot{}, nil
	}

	window := make(map[string]bool, ScheduleWindowDays)
	for i := 0; i < ScheduleWindowDays; i++ {
		window[now.AddDate(0, 0, i).Format(models.SlotDateLayout)] = true
	}

	common := make([]models.TimeSlot, 0)
	for key, slot := range sets[0] {
		if !window[slot.Date] {
			continue
		}
		inAll := true
		for _, set := range sets[1:] {
			if _, ok := set[key]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, slot)
		}
	}
	models.SortSlots(common)
	return common, nil
}

// RefreshCommonTimes recomputes the common slots of every table in the current
// round. A missing current round is not an error; there is nothing to refresh.
func (s *scheduleService) RefreshCommonTimes(ctx context.Context) error {
	number, err := s.roundRepo.CurrentRound(ctx)
	if err != nil {
		return err
	}
	round, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil
		}
		return err
	}

	for ti := range round.Tables {
		common, err := s.CommonSlots(ctx, round.Tables[ti].Players)
		if err != nil {
			return err
		}
		round.Tables[ti].CommonTimes = common
	}
	if err := s.roundRepo.Save(ctx, *round); err != nil {
		return err
	}
	notify(s.notifier, EventRoundUpdated, *round)
	return nil
}
