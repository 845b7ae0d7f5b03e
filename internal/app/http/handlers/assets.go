package handlers

import (
	"net/http"
	"strconv"

	"github.com/RKATechSolutions/crane-care/internal/domain/asset"
)

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.ParseInt(r.URL.Query().Get("client_id"), 10, 64)

	out, err := h.Assets.List(r.Context(), clientID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list assets failed")
		http.Error(w, "list assets failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	out, err := h.Clients.List(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list clients failed")
		http.Error(w, "list clients failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

type importResponse struct {
	Imported int                    `json:"imported"`
	Errors   []asset.ImportRowError `json:"errors,omitempty"`
}

// ImportAssets takes a CSV body with whatever headers the client's
// spreadsheet uses; alias mapping happens in the asset package.
func (h *Handlers) ImportAssets(w http.ResponseWriter, r *http.Request) {
	res, err := asset.ImportCSV(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	for _, a := range res.Assets {
		if _, err := h.Assets.Upsert(r.Context(), a); err != nil {
			h.Log.Error().Err(err).Str("asset", a.Name).Msg("asset upsert failed")
			res.Errors = append(res.Errors, asset.ImportRowError{Reason: "store failed: " + a.Name})
			continue
		}
		imported++
	}

	h.Log.Info().Int("imported", imported).Int("errors", len(res.Errors)).Msg("asset import done")
	h.writeJSON(w, http.StatusOK, importResponse{Imported: imported, Errors: res.Errors})
}
