package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type TillHandler struct{ svc service.TillService }

func NewTillHandler(svc service.TillService) *TillHandler { return &TillHandler{svc: svc} }

// storeQuery returns the optional ?store_id= filter.
func storeQuery(c *gin.Context) *string {
	if v := c.Query("store_id"); v != "" {
		return &v
	}
	return nil
}

// Open godoc
// @Summary Abre o caixa da loja
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenTillRequest true "Valor inicial"
// @Success 201 {object} dto.TillSessionResponse
// @Failure 409 {object} apperr.APIError "Caixa já aberto para a loja ou usuário"
// @Router /v1/cash-till-sessions/open [post]
func (h *TillHandler) Open(c *gin.Context) {
	var req dto.OpenTillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Fecha o caixa e calcula a diferença
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Param body body dto.CloseTillRequest true "Valor contado na gaveta"
// @Success 200 {object} dto.TillSessionResponse
// @Failure 409 {object} apperr.APIError "Caixa já fechado"
// @Router /v1/cash-till-sessions/{id}/close [post]
func (h *TillHandler) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CloseTillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status reports whether the caller's store has an open session and its
// running totals.
func (h *TillHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context(), actorFrom(c), storeQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TillHandler) GetSession(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.FindSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TillHandler) History(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && v >= 1 && v <= 100 {
		limit = v
	}
	resp, err := h.svc.ListSessions(c.Request.Context(), actorFrom(c), storeQuery(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "limit": limit})
}
