package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/tetsupaint/internal/app/system/timeouts"
	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Catalog is the part of the catalog store the health check reports on.
type Catalog interface {
	Products() []models.Product
	Projects() []models.Project
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  Pinger
	Catalog Catalog
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, catalog and logger.
func NewHandler(client Pinger, cat Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Catalog: cat,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Products int    `json:"products"`
	Projects int    `json:"projects"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "products":8, "projects":6 }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Products: len(h.Catalog.Products()),
		Projects: len(h.Catalog.Projects()),
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
