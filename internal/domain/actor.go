package domain

// Actor é a identidade autenticada que executa uma operação.
// É resolvida a partir do token bearer a cada requisição e passada explicitamente aos serviços.
type Actor struct {
	ID                   int64
	Username             string
	Role                 UserRole
	AssignedWarehouseIDs map[int64]struct{}
}

// NewActor monta um Actor a partir da lista de armazéns atribuídos.
func NewActor(id int64, username string, role UserRole, warehouseIDs []int64) *Actor {
	assigned := make(map[int64]struct{}, len(warehouseIDs))
	for _, id := range warehouseIDs {
		assigned[id] = struct{}{}
	}
	return &Actor{ID: id, Username: username, Role: role, AssignedWarehouseIDs: assigned}
}

// IsAdmin informa se o ator possui o papel de administrador.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// HasWarehouse informa se o armazém está no conjunto atribuído ao ator.
func (a *Actor) HasWarehouse(warehouseID int64) bool {
	if a == nil {
		return false
	}
	_, ok := a.AssignedWarehouseIDs[warehouseID]
	return ok
}
