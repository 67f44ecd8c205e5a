package apikey

import "net/http"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GenerateKey rotates the API key and returns the new one as plain text, for
// display in an admin UI. This is the only time the key is ever shown.
func (h *Handler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.IssueNewKey(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(key))
}
