// internal/adapters/in/http/store/handler/helper_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	cartdom "vergilius/internal/domain/cart"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": strings.TrimSpace(msg),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ============================================================
// Cart read model (derived totals recomputed per response)
// ============================================================

type cartDTO struct {
	UserID    string             `json:"userId"`
	Items     []cartdom.LineItem `json:"items"`
	Total     float64            `json:"total"`
	Count     int                `json:"count"`
	UpdatedAt string             `json:"updatedAt,omitempty"`
}

func toCartDTO(c *cartdom.Cart) cartDTO {
	dto := cartDTO{
		UserID:    c.ID,
		Items:     c.Items,
		Total:     c.Total(),
		Count:     c.Count(),
		UpdatedAt: toRFC3339(c.UpdatedAt),
	}
	if dto.Items == nil {
		dto.Items = []cartdom.LineItem{}
	}
	return dto
}
