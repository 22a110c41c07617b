package service

import (
	"github.com/google/uuid"

	"github.com/vitorduarteebb/otica2/internal/apperr"
	"github.com/vitorduarteebb/otica2/internal/model"
)

// Actor is the authenticated caller, as resolved from the JWT by the HTTP
// layer. Services receive it explicitly so access rules stay testable
// without any gin machinery.
type Actor struct {
	UserID  uuid.UUID
	Role    string
	StoreID *uuid.UUID
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// EffectiveStore resolves which store an operation targets.
// Gerente callers always act on their own store; the requested value, when
// present, must match it. Admin callers must name a store explicitly.
func (a Actor) EffectiveStore(requested *string) (uuid.UUID, error) {
	if a.IsAdmin() {
		if requested == nil || *requested == "" {
			return uuid.Nil, apperr.Validationf("store_id é obrigatório para administradores")
		}
		id, err := uuid.Parse(*requested)
		if err != nil {
			return uuid.Nil, apperr.Validationf("store_id inválido")
		}
		return id, nil
	}

	if a.StoreID == nil {
		return uuid.Nil, apperr.Validationf("usuário não está vinculado a nenhuma loja")
	}
	if requested != nil && *requested != "" && *requested != a.StoreID.String() {
		return uuid.Nil, apperr.Validationf("gerente só pode operar na própria loja")
	}
	return *a.StoreID, nil
}
