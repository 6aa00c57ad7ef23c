package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bridge-lite/replay"
)

// HTTPHandler serves deal history and replay generation as JSON.
type HTTPHandler struct {
	ledger Service
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(ledgerService Service) *HTTPHandler {
	return &HTTPHandler{ledger: ledgerService}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/deals/sim/recent", h.handleRecent(SourceSim))
	mux.HandleFunc("GET /api/deals/replay/recent", h.handleRecent(SourceReplay))
	mux.HandleFunc("GET /api/deals/{id}", h.handleGetDeal)
	mux.HandleFunc("POST /api/deals/{id}/save", h.handleSetSaved(true))
	mux.HandleFunc("DELETE /api/deals/{id}/save", h.handleSetSaved(false))
	mux.HandleFunc("POST /api/replay", h.handleReplay)
}

func (h *HTTPHandler) handleRecent(source Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r.URL.Query().Get("limit"))
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		items, err := h.ledger.ListRecent(ctx, source, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query recent deals failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *HTTPHandler) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	dealID := strings.TrimSpace(r.PathValue("id"))
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	detail, err := h.ledger.GetDeal(ctx, dealID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "deal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "query deal failed")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *HTTPHandler) handleSetSaved(saved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealID := strings.TrimSpace(r.PathValue("id"))
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		err := h.ledger.SetSaved(ctx, dealID, saved)
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "deal not found")
			return
		case errors.Is(err, ErrSavedLimitReach):
			writeError(w, http.StatusConflict, "saved deal limit reached")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "update save state failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"deal_id":  dealID,
			"is_saved": saved,
		})
	}
}

// handleReplay replays a posted DealSpec and keeps the resulting tape.
func (h *HTTPHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	var spec replay.DealSpec
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp := replay.HandleSpec(spec)
	if !resp.OK {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	dealID := NewDealID()
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	err := h.ledger.RecordDeal(ctx, DealRecord{
		DealID:   dealID,
		Source:   SourceReplay,
		PlayedAt: time.Now().UTC(),
		Summary:  summaryFromTape(resp.Tape),
		Events:   EventsFromTape(resp.Tape),
	})
	if err != nil {
		log.Printf("[Ledger] record replay deal %s failed: %v", dealID, err)
		writeError(w, http.StatusInternalServerError, "record replay deal failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deal_id": dealID,
		"tape":    resp.Tape,
	})
}

// summaryFromTape lifts the opening seat and the dealEnd payload into a
// history summary.
func summaryFromTape(tape *replay.WireReplayTape) map[string]any {
	out := map[string]any{"opener": tape.OpeningSeat}
	end, ok, err := tape.DealEnd()
	if err != nil {
		log.Printf("[Ledger] decode dealEnd failed: %v", err)
	}
	out["complete"] = ok
	for k, v := range end {
		out[k] = v
	}
	return out
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return clampLimit(0)
	}
	return clampLimit(n)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
