package domain

import (
	"time"
)

// CutOffDateLayout é o formato ISO de data de corte (YYYY-MM-DD).
const CutOffDateLayout = "2006-01-02"

// CountStatus representa o estado do ciclo de vida de uma contagem.
type CountStatus string

const (
	CountInProgress CountStatus = "in_progress"
	// CountCompleted está reservado: nenhuma transição o produz.
	CountCompleted CountStatus = "completed"
	CountClosed    CountStatus = "closed"
)

// Valid informa se o status pertence à enumeração.
func (s CountStatus) Valid() bool {
	switch s {
	case CountInProgress, CountCompleted, CountClosed:
		return true
	}
	return false
}

// InventoryCount é um exercício de contagem ligado a um armazém e a uma data de corte.
// ClosedAt é não-nulo se e somente se Status == CountClosed.
type InventoryCount struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	CutOffDate      time.Time   `json:"-"`
	WarehouseID     int64       `json:"warehouse_id"`
	WarehouseName   string      `json:"warehouse_name"`
	Status          CountStatus `json:"status"`
	CreatedBy       int64       `json:"created_by"`
	CreatorUsername string      `json:"creator_username"`
	CreatedAt       time.Time   `json:"created_at"`
	ClosedAt        *time.Time  `json:"closed_at"`
	ItemsCount      int         `json:"items_count"`
}

// IsClosed informa se a contagem já foi fechada.
func (c InventoryCount) IsClosed() bool {
	return c.Status == CountClosed
}

// CountView é a representação JSON de uma contagem (data de corte como YYYY-MM-DD).
type CountView struct {
	InventoryCount
	CutOffDate string `json:"cut_off_date" example:"2025-01-31"`
}

// View converte a contagem para a representação de resposta.
func (c InventoryCount) View() CountView {
	return CountView{InventoryCount: c, CutOffDate: c.CutOffDate.Format(CutOffDateLayout)}
}

// CountDetail é uma contagem com todos os seus itens.
type CountDetail struct {
	CountView
	Items []InventoryItem `json:"items"`
}

// CountInput é o payload de criação de contagens.
type CountInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	CutOffDate  string `json:"cut_off_date" validate:"required" example:"2025-01-31"`
	WarehouseID int64  `json:"warehouse_id" validate:"required,gt=0"`
}

// CountFilter define os filtros opcionais da listagem de contagens (combinados com AND).
type CountFilter struct {
	WarehouseID *int64
	Status      *CountStatus
}
