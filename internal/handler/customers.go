package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitorduarteebb/otica2/internal/dto"
	"github.com/vitorduarteebb/otica2/internal/service"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Create godoc
// @Summary Cadastra um cliente com dados ópticos
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 409 {object} apperr.APIError "CPF já cadastrado"
// @Router /v1/customers [post]
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
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

func (h *CustomersHandler) List(c *gin.Context) {
	var filter dto.CustomerFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) GetByID(c *gin.Context) {
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

func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
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

func (h *CustomersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
