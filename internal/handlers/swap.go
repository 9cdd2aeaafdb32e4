package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/davidmorel/skillswap/internal/models"
	"github.com/davidmorel/skillswap/internal/services"
)

type SwapHandler struct {
	swapService services.SwapServiceInterface
}

func NewSwapHandler(swapService services.SwapServiceInterface) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

type CreateSwapRequest struct {
	TargetID     string `json:"target_id"`
	SkillOffered string `json:"skill_offered"`
	SkillWanted  string `json:"skill_wanted"`
	Message      string `json:"message"`
}

type RateSwapRequest struct {
	Rating int `json:"rating"`
}

type SwapListResponse struct {
	Swaps []models.SwapRequest `json:"swaps"`
	Count int                  `json:"count"`
}

type SwapResponse struct {
	Swap    *models.SwapRequest `json:"swap,omitempty"`
	Message string              `json:"message,omitempty"`
}

func (h *SwapHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target user ID")
		return
	}

	swap, err := h.swapService.Create(r.Context(), models.CreateSwapParams{
		RequesterID:  user.ID,
		TargetID:     targetID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
	})
	switch {
	case errors.Is(err, services.ErrSkillMissing),
		errors.Is(err, services.ErrSkillsEqual),
		errors.Is(err, services.ErrSkillNotOffered),
		errors.Is(err, services.ErrSkillNotYours),
		errors.Is(err, services.ErrCannotSwapSelf):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Printf("Error creating swap request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, SwapResponse{Swap: swap, Message: "Swap request sent"})
}

func (h *SwapHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	direction := models.SwapDirection(r.URL.Query().Get("direction"))
	if direction == "" {
		direction = models.SwapDirectionReceived
	}

	swaps, err := h.swapService.ListForViewer(r.Context(), user.ID, direction)
	if errors.Is(err, services.ErrUnknownDirection) {
		writeError(w, http.StatusBadRequest, "Direction must be received or sent")
		return
	}
	if err != nil {
		log.Printf("Error listing swap requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SwapListResponse{Swaps: swaps, Count: len(swaps)})
}

func (h *SwapHandler) Counts(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	counts, err := h.swapService.CountByDirection(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error counting swap requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

func (h *SwapHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "accepted", h.swapService.Accept)
}

func (h *SwapHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "rejected", h.swapService.Reject)
}

func (h *SwapHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "completed", h.swapService.Complete)
}

func (h *SwapHandler) transition(w http.ResponseWriter, r *http.Request, verb string, op func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	swapID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap request ID")
		return
	}

	swap, err := op(r.Context(), swapID, user.ID)
	if err != nil {
		h.writeSwapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SwapResponse{Swap: swap, Message: "Swap request " + verb})
}

func (h *SwapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	swapID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap request ID")
		return
	}

	if err := h.swapService.Delete(r.Context(), swapID, user.ID); err != nil {
		h.writeSwapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SwapResponse{Message: "Swap request deleted"})
}

func (h *SwapHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	swapID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap request ID")
		return
	}

	var req RateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	swap, err := h.swapService.Rate(r.Context(), swapID, user.ID, req.Rating)
	if err != nil {
		h.writeSwapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SwapResponse{Swap: swap, Message: "Rating saved"})
}

// writeSwapError maps ledger errors onto HTTP statuses. Wrong-state
// transitions are conflicts so clients can distinguish them from bad input.
func (h *SwapHandler) writeSwapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSwapNotFound):
		writeError(w, http.StatusNotFound, "Swap request not found")
	case errors.Is(err, services.ErrNotSwapTarget),
		errors.Is(err, services.ErrNotSwapRequester),
		errors.Is(err, services.ErrNotSwapParticipant):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrSwapNotPending),
		errors.Is(err, services.ErrSwapNotAccepted),
		errors.Is(err, services.ErrSwapNotCompleted),
		errors.Is(err, services.ErrSwapAlreadyRated):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRatingOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Error on swap transition: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
