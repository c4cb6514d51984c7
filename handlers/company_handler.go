package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/repository"

	"github.com/google/uuid"
)

// CompanyHandler maintains the letterhead profile printed on documents.
type CompanyHandler struct {
	Repo repository.CompanyRepository
}

// Save replaces the profile. The latest saved profile wins; documents
// rendered afterwards pick it up.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}
	if profile.CompanyName == "" {
		writeError(w, apperr.Validation("company_name is required"))
		return
	}

	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now().UTC()

	if err := h.Repo.SaveProfile(&profile); err != nil {
		writeError(w, apperr.Internal("failed to save company profile", err))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: profile})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.GetProfile()
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch company profile", err))
		return
	}
	if profile == nil {
		writeError(w, apperr.NotFound("company profile not set"))
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: profile})
}
