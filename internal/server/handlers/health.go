package handlers

import (
	"context"

	"github.com/hoxhox/tvsource/internal/server/dto"
)

// Health reports liveness and the build version.
func (h *Handlers) Health(ctx context.Context, req *dto.HealthRequest) (*dto.Envelope, error) {
	return dto.OK(dto.HealthResponse{Status: "ok", Version: h.Version}), nil
}
