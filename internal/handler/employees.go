package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type EmployeesHandler struct{ svc service.EmployeeService }

func NewEmployeesHandler(svc service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

func (h *EmployeesHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EmployeesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Folha de pagamento ───────────────────────────────────────────────────────

// CreatePayroll godoc
// @Summary Lança a folha de um funcionário para um mês
// @Tags folha
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePayrollRequest true "Competência e valores"
// @Success 201 {object} dto.PayrollResponse
// @Failure 409 {object} apperr.APIError "Período já lançado"
// @Router /v1/payrolls [post]
func (h *EmployeesHandler) CreatePayroll(c *gin.Context) {
	var req dto.CreatePayrollRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePayroll(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EmployeesHandler) ListPayrolls(c *gin.Context) {
	var filter dto.PayrollFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListPayrolls(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkPayrollPaid stamps a payroll entry as paid.
func (h *EmployeesHandler) MarkPayrollPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	paid := true
	resp, err := h.svc.UpdatePayroll(c.Request.Context(), id, dto.UpdatePayrollRequest{Paid: &paid})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) UpdatePayroll(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePayrollRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePayroll(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
