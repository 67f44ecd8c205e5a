package settings

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetSettings returns the current snapshot. The API key is never included;
// it is only ever shown once, when issued.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.svc.Snapshot())
}

// UpdateSettings applies an admin edit of the toggles and preload time.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	next, err := h.svc.Apply(r.Context(), upd)
	if err != nil {
		code := http.StatusInternalServerError
		if err == ErrInvalidPreloadTime {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(next)
}
