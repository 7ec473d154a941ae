package services

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/repositories"
	"github.com/hokkyo/riichi-league/storage"
)

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.key = key
	u.contentType = contentType
	u.body = body
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

type adminFixture struct {
	svc          AdminService
	playerRepo   repositories.PlayerRepository
	roundRepo    repositories.RoundRepository
	scheduleRepo repositories.ScheduleRepository
	uploader     *fakeUploader
}

func newAdminFixture(t *testing.T, uploader storage.FileUploader) *adminFixture {
	t.Helper()
	f := &adminFixture{
		playerRepo:   repositories.NewMemoryPlayerRepository(),
		roundRepo:    repositories.NewMemoryRoundRepository(),
		scheduleRepo: repositories.NewMemoryScheduleRepository(),
	}
	if fu, ok := uploader.(*fakeUploader); ok {
		f.uploader = fu
	}
	game := NewGameService(f.playerRepo, f.roundRepo, rand.New(rand.NewSource(7)), nil, nil)
	f.svc = NewAdminService(f.playerRepo, f.roundRepo, f.scheduleRepo, game, uploader, nil, nil)
	return f
}

func TestResetSeedsFreshSeason(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	// Pre-existing state that must be wiped.
	dirty := models.DefaultRoster()
	dirty[0].TotalScore = 500
	require.NoError(t, f.playerRepo.SaveAll(ctx, dirty))
	require.NoError(t, f.roundRepo.SaveAll(ctx, []models.Round{{Number: 3, IsCompleted: true}}))
	require.NoError(t, f.roundRepo.SetCurrentRound(ctx, 3))
	require.NoError(t, f.scheduleRepo.Save(ctx, models.Schedule{PlayerID: 1, AvailableTimes: []string{"2025-08-25_morning"}}))

	require.NoError(t, f.svc.Reset(ctx))

	players, err := f.playerRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, models.DefaultRosterSize)
	for _, p := range players {
		assert.Equal(t, models.Score(0), p.TotalScore)
		assert.Empty(t, p.Scores)
	}

	current, err := f.roundRepo.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, current)

	round, err := f.roundRepo.GetByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, round.Tables, 2)
	assert.False(t, round.IsCompleted)

	rounds, err := f.roundRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)

	schedules, err := f.scheduleRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newAdminFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, src.svc.Reset(ctx))
	require.NoError(t, src.playerRepo.Update(ctx, 1, func(p *models.Player) {
		p.Name = "Akagi"
		p.TotalScore = 355
	}))

	snapshot, err := src.svc.Export(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.CurrentRound)
	assert.Equal(t, 1, *snapshot.CurrentRound)
	assert.Len(t, snapshot.Players, models.DefaultRosterSize)
	assert.False(t, snapshot.ExportTime.IsZero())

	dst := newAdminFixture(t, nil)
	require.NoError(t, dst.svc.Import(ctx, snapshot))

	p1, err := dst.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Akagi", p1.Name)
	assert.Equal(t, models.Score(355), p1.TotalScore)

	current, err := dst.roundRepo.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}

func TestImportNilGroupsLeaveStateUntouched(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.svc.Reset(ctx))
	require.NoError(t, f.playerRepo.Update(ctx, 1, func(p *models.Player) { p.Name = "Akagi" }))

	current := 4
	require.NoError(t, f.svc.Import(ctx, &models.Snapshot{CurrentRound: &current}))

	p1, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Akagi", p1.Name, "players group absent from snapshot stays as is")

	got, err := f.roundRepo.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestImportNilSnapshot(t *testing.T) {
	f := newAdminFixture(t, nil)

	err := f.svc.Import(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestBackupSchedulesUploadsJSON(t *testing.T) {
	uploader := &fakeUploader{}
	f := newAdminFixture(t, uploader)
	ctx := context.Background()
	require.NoError(t, f.scheduleRepo.Save(ctx, models.Schedule{
		PlayerID:       1,
		AvailableTimes: []string{"2025-08-25_morning"},
		UpdatedAt:      time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC),
	}))

	result, err := f.svc.BackupSchedules(ctx)
	require.NoError(t, err)

	assert.Regexp(t, `^backups/schedule-backup_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.json$`, result.Key)
	assert.Equal(t, "application/json", uploader.contentType)

	var payload struct {
		Schedules  []models.Schedule `json:"schedules"`
		BackupTime time.Time         `json:"backupTime"`
	}
	require.NoError(t, json.Unmarshal(uploader.body, &payload))
	require.Len(t, payload.Schedules, 1)
	assert.Equal(t, 1, payload.Schedules[0].PlayerID)
}

func TestBackupSchedulesNotConfigured(t *testing.T) {
	f := newAdminFixture(t, nil)

	_, err := f.svc.BackupSchedules(context.Background())
	assert.ErrorIs(t, err, ErrBackupNotConfigured)
}
