package handlers

import (
	"net/http"

	"github.com/hokkyo/riichi-league/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// ListPlayers godoc
// @Summary      List the roster with cumulative standings
// @Tags         players
// @Produce      json
// @Success      200 {array} models.Player
// @Router       /players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players, nil)
}

// GetPlayer godoc
// @Summary      Get one player
// @Tags         players
// @Produce      json
// @Param        playerID path int true "Player ID"
// @Success      200 {object} models.Player
// @Failure      404 {object} map[string]string
// @Router       /players/{playerID} [get]
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := readIntParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, player, nil)
}

// RenamePlayer godoc
// @Summary      Rename a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        playerID path int true "Player ID"
// @Success      200 {object} models.Player
// @Failure      400 {object} map[string]string
// @Router       /players/{playerID} [patch]
func (h *PlayerHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := readIntParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Rename(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, player, nil)
}
