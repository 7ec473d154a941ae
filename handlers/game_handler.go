package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// parseScoreMap converts a wire score map (string player ids, decimal numbers)
// into domain form. Scores are validated lexically so anything beyond one
// decimal digit is rejected before it can pollute the standings.
func parseScoreMap(raw map[string]json.Number) (map[int]models.Score, error) {
	scores := make(map[int]models.Score, len(raw))
	for idStr, num := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid player id %q in scores", idStr)
		}
		score, err := models.ParseScore(num.String())
		if err != nil {
			return nil, fmt.Errorf("score for player %d: %w", id, err)
		}
		scores[id] = score
	}
	return scores, nil
}

func parseRatingsMap(raw map[string]map[string]string) (map[int]map[int]string, error) {
	ratings := make(map[int]map[int]string, len(raw))
	for tableStr, byPlayer := range raw {
		tableID, err := strconv.Atoi(tableStr)
		if err != nil || tableID < 1 {
			return nil, fmt.Errorf("invalid table id %q in ratings", tableStr)
		}
		ratings[tableID] = make(map[int]string, len(byPlayer))
		for idStr, rating := range byPlayer {
			id, err := strconv.Atoi(idStr)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid player id %q in ratings", idStr)
			}
			ratings[tableID][id] = rating
		}
	}
	return ratings, nil
}

func parsePlayerStringMap(raw map[string]string, field string) (map[int]string, error) {
	out := make(map[int]string, len(raw))
	for idStr, value := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid player id %q in %s", idStr, field)
		}
		out[id] = value
	}
	return out, nil
}

func validateRecordURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("record url %q must be an absolute http(s) URL", raw)
	}
	return nil
}

// ListRounds godoc
// @Summary      List every round, past and current
// @Tags         games
// @Produce      json
// @Success      200 {array} models.Round
// @Router       /games [get]
func (h *GameHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.gameService.ListRounds(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds, nil)
}

// GetCurrentRound godoc
// @Summary      Get the round currently being played
// @Tags         games
// @Produce      json
// @Success      200 {object} models.Round
// @Failure      404 {object} map[string]string
// @Router       /games/current [get]
func (h *GameHandler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.gameService.CurrentRound(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round, nil)
}

// GetCurrentRoundNumber godoc
// @Summary      Get the current round number
// @Tags         games
// @Produce      json
// @Success      200 {object} map[string]int
// @Router       /games/current-round [get]
func (h *GameHandler) GetCurrentRoundNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.gameService.CurrentRoundNumber(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"currentRound": number}, nil)
}

// SubmitResults godoc
// @Summary      Record the current round's results
// @Description  Applies scores to every roster player. With advance=true the
// @Description  round is sealed and the next round is paired from the updated
// @Description  standings.
// @Tags         games
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /games/current/results [post]
func (h *GameHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Scores     map[string]json.Number       `json:"scores"`
		Ratings    map[string]map[string]string `json:"ratings"`
		RecordURLs map[string]string            `json:"recordUrls"`
		Advance    bool                         `json:"advanceRound"`
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
	ratings, err := parseRatingsMap(input.Ratings)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	recordURLs := make(map[int]string, len(input.RecordURLs))
	for tableStr, rawURL := range input.RecordURLs {
		tableID, err := strconv.Atoi(tableStr)
		if err != nil || tableID < 1 {
			badRequestResponse(w, r, fmt.Errorf("invalid table id %q in recordUrls", tableStr))
			return
		}
		if err := validateRecordURL(rawURL); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		recordURLs[tableID] = rawURL
	}

	err = h.gameService.SubmitResults(r.Context(), scores, services.SubmitOptions{
		Ratings:    ratings,
		RecordURLs: recordURLs,
		Advance:    input.Advance,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "results recorded"}, nil)
}

// RegroupCurrentRound godoc
// @Summary      Re-pair the current round's tables under a policy
// @Tags         games
// @Accept       json
// @Produce      json
// @Success      200 {object} models.Round
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /games/current/regroup [post]
func (h *GameHandler) RegroupCurrentRound(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Method string `json:"method"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.gameService.RegroupCurrentRound(r.Context(), input.Method)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round, nil)
}
