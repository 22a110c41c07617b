// Package apperr defines the error taxonomy shared by services and handlers,
// plus the JSON envelopes returned to clients. All 4xx/5xx responses go
// through this package so internal details (stack traces, SQL errors) are
// never leaked.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field detail for bad input.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError — a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " não encontrado(a)" }

func NotFound(entity string) *NotFoundError { return &NotFoundError{Entity: entity} }

// ConflictError — the operation collides with existing state
// (e.g. a till session already open for the store or user).
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

func Conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

// InvalidStateError — the entity is not in a state that allows the operation
// (e.g. closing an already-closed till session).
type InvalidStateError struct {
	Detail string
}

func (e *InvalidStateError) Error() string { return e.Detail }

func InvalidState(detail string) *InvalidStateError { return &InvalidStateError{Detail: detail} }

// NoOpenSessionError — a sale was attempted without an open till session.
type NoOpenSessionError struct{}

func (e *NoOpenSessionError) Error() string {
	return "Não há um caixa aberto para esta loja. Abra um caixa para registrar vendas."
}

// InsufficientStockError names the product and the shortfall.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Produto %s não tem estoque suficiente (solicitado %d, disponível %d)",
		e.Product, e.Requested, e.Available)
}

// Status maps a domain error to its HTTP status code and response body.
// Unknown errors map to 500 with a generic message.
func Status(err error) (int, interface{}) {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		is *InvalidStateError
		ns *NoOpenSessionError
		st *InsufficientStockError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve
	case errors.As(err, &nf):
		return http.StatusNotFound, New(nf.Error())
	case errors.As(err, &ce):
		return http.StatusConflict, New(ce.Error())
	case errors.As(err, &is):
		return http.StatusConflict, New(is.Error())
	case errors.As(err, &ns):
		return http.StatusConflict, New(ns.Error())
	case errors.As(err, &st):
		return http.StatusConflict, New(st.Error())
	}
	return http.StatusInternalServerError, New("Erro interno do servidor")
}
