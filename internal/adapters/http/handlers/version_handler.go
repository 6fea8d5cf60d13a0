package handlers

import (
	"net/http"

	"github.com/mwestberg/todo-api/internal/adapters/http/dto"
)

// BuildInfo carries the values stamped at link time via -ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// VersionHandler exposes the running build's identity.
type VersionHandler struct {
	info BuildInfo
}

// NewVersionHandler creates a VersionHandler for the given build info.
func NewVersionHandler(info BuildInfo) *VersionHandler {
	if info.Version == "" {
		info.Version = "dev"
	}
	return &VersionHandler{info: info}
}

// Version handles GET /version.
func (h *VersionHandler) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.VersionResponse{
		Version:   h.info.Version,
		Commit:    h.info.Commit,
		BuildDate: h.info.BuildDate,
	})
}
