package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hokkyo/riichi-league/services"
)

type HistoryHandler struct {
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListHistory godoc
// @Summary      List completed rounds
// @Tags         history
// @Produce      json
// @Success      200 {array} models.Round
// @Router       /history [get]
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.historyService.ListCompletedRounds(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds, nil)
}

// UpdateTableRecord godoc
// @Summary      Edit one historical table's record
// @Description  Replaces the table's scores, ratings and record URL, then
// @Description  recalculates every player's total from the full history.
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        roundNumber path int true "Round number"
// @Param        tableID path int true "Table ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /history/{roundNumber}/tables/{tableID} [put]
func (h *HistoryHandler) UpdateTableRecord(w http.ResponseWriter, r *http.Request) {
	roundNumber, err := readIntParam(r, "roundNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tableID, err := readIntParam(r, "tableID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Scores    map[string]json.Number `json:"scores"`
		Ratings   map[string]string      `json:"ratings"`
		RecordURL string                 `json:"recordUrl"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := parseScoreMap(input.Scores)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	ratings, err := parsePlayerStringMap(input.Ratings, "ratings")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRecordURL(input.RecordURL); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.historyService.UpdateTableRecord(r.Context(), roundNumber, tableID, scores, ratings, input.RecordURL); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "record updated"}, nil)
}

// RecomputeStandings godoc
// @Summary      Rebuild all totals from the round history
// @Tags         history
// @Produce      json
// @Success      200 {array} models.Player
// @Router       /history/recompute [post]
func (h *HistoryHandler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	players, err := h.historyService.RecomputeStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players, nil)
}
