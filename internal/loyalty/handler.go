package loyalty

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glad47/pos-sync-service/internal/change"
	"github.com/glad47/pos-sync-service/internal/obs"
	"github.com/glad47/pos-sync-service/internal/respond"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Full listing, nested shape
func (h *Handler) All(c *gin.Context) {
	items, err := h.repo.All(c.Request.Context())
	if err != nil {
		obs.Logger.Error("failed to list loyalty programs", "err", err)
		respond.Error(c, http.StatusInternalServerError, "failed to fetch loyalty programs")
		return
	}
	respond.List(c, items, len(items))
}

type changedReq struct {
	Since *string `json:"since"`
}

// Delta feed, flattened shape (barcodes only)
func (h *Handler) Changed(c *gin.Context) {
	var req changedReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	raw := ""
	if req.Since != nil {
		raw = *req.Since
	}
	since, err := change.ParseSince(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid since timestamp")
		return
	}

	set, err := h.repo.Changed(c.Request.Context(), since)
	if err != nil {
		obs.Logger.Error("failed to list changed loyalty programs", "err", err)
		respond.Error(c, http.StatusInternalServerError, "failed to fetch changed loyalty programs")
		return
	}
	respond.Changes(c, set, set.Count(), req.Since)
}
