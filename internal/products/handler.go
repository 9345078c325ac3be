package products

import (
	"errors"
	"io"
	"net/http"
	"strconv"

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

// Full listing (optional category_id filter)
func (h *Handler) All(c *gin.Context) {
	var categoryID *int64
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid category_id")
			return
		}
		categoryID = &id
	}

	items, err := h.repo.All(c.Request.Context(), categoryID)
	if err != nil {
		obs.Logger.Error("failed to list products", "err", err)
		respond.Error(c, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	respond.List(c, items, len(items))
}

type changedReq struct {
	Since *string `json:"since"`
}

// Delta feed since the client watermark
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
		obs.Logger.Error("failed to list changed products", "err", err)
		respond.Error(c, http.StatusInternalServerError, "failed to fetch changed products")
		return
	}
	respond.Changes(c, set, set.Count(), req.Since)
}
