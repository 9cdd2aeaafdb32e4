package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/davidmorel/skillswap/internal/models"
	"github.com/davidmorel/skillswap/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileServiceInterface
}

func NewProfileHandler(profileService services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	DisplayName   *string  `json:"display_name"`
	Location      *string  `json:"location"`
	AvatarURL     *string  `json:"avatar_url"`
	Availability  *string  `json:"availability"`
	Bio           *string  `json:"bio"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

type BrowseResponse struct {
	Users []models.PublicProfile `json:"users"`
}

// Browse lists the directory, optionally filtered to an offered skill.
func (h *ProfileHandler) Browse(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profiles, err := h.profileService.Browse(r.Context(), user.ID, r.URL.Query().Get("skill"))
	if err != nil {
		log.Printf("Error browsing profiles: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, BrowseResponse{Users: profiles})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update edits the authenticated user's own profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DisplayName != nil {
		if name := *req.DisplayName; len(name) < 2 || len(name) > 100 {
			writeError(w, http.StatusBadRequest, "Display name must be between 2 and 100 characters")
			return
		}
	}

	updated, err := h.profileService.UpdateProfile(r.Context(), user.ID, models.UpdateProfileParams{
		DisplayName:   req.DisplayName,
		Location:      req.Location,
		AvatarURL:     req.AvatarURL,
		Availability:  req.Availability,
		Bio:           req.Bio,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	})
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
