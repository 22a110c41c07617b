package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Sales godoc
// @Summary Relatório de vendas por período, loja e forma de pagamento
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param store_id query string false "Filtra por loja (admin)"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.SalesReportResponse
// @Router /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Sales(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) TopProducts(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.TopProducts(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) LeastProducts(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.LeastProducts(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) CashFlow(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.CashFlow(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
