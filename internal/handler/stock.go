package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Record godoc
// @Summary Registra uma entrada ou saída manual de estoque
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.StockMovementRequest true "Movimentação"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 409 {object} apperr.APIError "Estoque insuficiente"
// @Router /v1/stock-movements [post]
func (h *StockHandler) Record(c *gin.Context) {
	var req dto.StockMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListForStore returns per-product quantities of one store.
func (h *StockHandler) ListForStore(c *gin.Context) {
	resp, err := h.svc.ListForStore(c.Request.Context(), actorFrom(c), storeQuery(c), c.Query("stock_level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListForProduct returns per-store quantities of one product.
func (h *StockHandler) ListForProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListForProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
