package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ListSchedules godoc
// @Summary      List every player's availability
// @Tags         schedules
// @Produce      json
// @Success      200 {array} models.Schedule
// @Router       /schedules [get]
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules, nil)
}

// GetPlayerSchedule godoc
// @Summary      Get one player's availability
// @Tags         schedules
// @Produce      json
// @Param        playerID path int true "Player ID"
// @Success      200 {object} models.Schedule
// @Router       /schedules/{playerID} [get]
func (h *ScheduleHandler) GetPlayerSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := readIntParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	schedule, err := h.scheduleService.PlayerSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule, nil)
}

// SavePlayerSchedule godoc
// @Summary      Replace one player's availability
// @Description  Overwrites the stored slot set, updates the player's filled
// @Description  flag, and refreshes common times for the current round.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        playerID path int true "Player ID"
// @Success      200 {object} models.Schedule
// @Failure      400 {object} map[string]string
// @Router       /schedules/{playerID} [put]
func (h *ScheduleHandler) SavePlayerSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := readIntParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		AvailableTimes []string `json:"availableTimes"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	now := time.Now()
	keys := make([]string, 0, len(input.AvailableTimes))
	for _, raw := range input.AvailableTimes {
		slot, err := models.ParseSlotKey(raw, now)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		keys = append(keys, slot.Key())
	}

	schedule, err := h.scheduleService.SavePlayerSchedule(r.Context(), id, keys)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule, nil)
}

// ToggleSlot godoc
// @Summary      Flip one slot in a player's availability
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        playerID path int true "Player ID"
// @Success      200 {object} models.Schedule
// @Failure      400 {object} map[string]string
// @Router       /schedules/{playerID}/toggle [post]
func (h *ScheduleHandler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	id, err := readIntParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Date   string `json:"dateStr"`
		Period string `json:"period"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := time.Parse(models.SlotDateLayout, input.Date); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid dateStr %q: want YYYY-MM-DD", input.Date))
		return
	}
	period := models.Period(input.Period)
	if !models.ValidPeriod(period) {
		badRequestResponse(w, r, fmt.Errorf("invalid period %q", input.Period))
		return
	}

	schedule, err := h.scheduleService.ToggleSlot(r.Context(), id, models.TimeSlot{Date: input.Date, Period: period})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule, nil)
}

// CommonSlots godoc
// @Summary      Common availability of a set of players
// @Description  Intersects the stored schedules of the players named in the
// @Description  comma separated players query parameter, limited to the next
// @Description  seven days. Tables normally hold four players, but short
// @Description  trailing tables are valid, so any positive count is accepted.
// @Tags         schedules
// @Produce      json
// @Param        players query string true "Comma separated player IDs"
// @Success      200 {array} models.TimeSlot
// @Failure      400 {object} map[string]string
// @Router       /schedules/common [get]
func (h *ScheduleHandler) CommonSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("players")
	if raw == "" {
		badRequestResponse(w, r, fmt.Errorf("players query parameter is required"))
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 1 {
			badRequestResponse(w, r, fmt.Errorf("invalid player id %q in players parameter", part))
			return
		}
		ids = append(ids, id)
	}

	slots, err := h.scheduleService.CommonSlots(r.Context(), ids)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slots, nil)
}
