// Package policy decide se um ator pode operar sobre um armazém.
//
// ADMIN não tem restrições. USER só acessa os armazéns atribuídos a ele.
package policy

import (
	"fmt"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
)

// RequireWarehouse autoriza o ator a operar sobre o armazém informado.
func RequireWarehouse(actor *domain.Actor, warehouseID int64) error {
	if actor == nil {
		return apperror.NewUnauthorizedError("Autenticação necessária.")
	}
	if actor.IsAdmin() || actor.HasWarehouse(warehouseID) {
		return nil
	}
	return apperror.NewForbiddenError(fmt.Sprintf("Sem acesso ao armazém %d.", warehouseID))
}

// RequireAdmin autoriza apenas administradores.
func RequireAdmin(actor *domain.Actor) error {
	if actor == nil {
		return apperror.NewUnauthorizedError("Autenticação necessária.")
	}
	if !actor.IsAdmin() {
		return apperror.NewForbiddenError("Operação restrita a administradores.")
	}
	return nil
}

// RequireAuthenticated só exige que haja um ator resolvido.
func RequireAuthenticated(actor *domain.Actor) error {
	if actor == nil {
		return apperror.NewUnauthorizedError("Autenticação necessária.")
	}
	return nil
}
