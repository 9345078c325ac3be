package promotions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glad47/pos-sync-service/internal/obs"
	"github.com/glad47/pos-sync-service/internal/respond"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) All(c *gin.Context) {
	items, err := h.repo.All(c.Request.Context())
	if err != nil {
		obs.Logger.Error("failed to list promotions", "err", err)
		respond.Error(c, http.StatusInternalServerError, "failed to fetch promotions")
		return
	}
	respond.List(c, items, len(items))
}
