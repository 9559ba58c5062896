package models

import "time"

// Unlimited лимит без ограничения.
const Unlimited = -1

// Системные имена тарифов.
const (
	PlanFree    = "free"
	PlanTrial   = "trial"
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// Plan тариф с ценой и лимитами.
// Name стабильный ключ и после создания не меняется.
type Plan struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	DisplayName      string    `json:"display_name"`
	Description      string    `json:"description,omitempty"`
	Price            int64     `json:"price"` // в копейках/центах
	Currency         string    `json:"currency"`
	MaxHouses        int       `json:"max_houses"`
	MaxRoomsPerHouse int       `json:"max_rooms_per_house"`
	MaxItemsPerRoom  int       `json:"max_items_per_room"`
	IsActive         bool      `json:"is_active"`
	AllowTrial       bool      `json:"allow_trial"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Limit возвращает лимит тарифа для измерения.
func (p *Plan) Limit(d Dimension) (int, bool) {
	switch d {
	case DimensionHouses:
		return p.MaxHouses, true
	case DimensionRoomsPerHouse:
		return p.MaxRoomsPerHouse, true
	case DimensionItemsPerRoom:
		return p.MaxItemsPerRoom, true
	default:
		return 0, false
	}
}

// PlanSpec входные данные для создания тарифа.
type PlanSpec struct {
	Name             string `json:"name" validate:"required"`
	DisplayName      string `json:"display_name" validate:"required"`
	Description      string `json:"description"`
	Price            int64  `json:"price" validate:"min=0"`
	Currency         string `json:"currency" validate:"omitempty,len=3"`
	MaxHouses        int    `json:"max_houses" validate:"min=-1"`
	MaxRoomsPerHouse int    `json:"max_rooms_per_house" validate:"min=-1"`
	MaxItemsPerRoom  int    `json:"max_items_per_room" validate:"min=-1"`
	IsActive         *bool  `json:"is_active"`
	AllowTrial       bool   `json:"allow_trial"`
	SortOrder        int    `json:"sort_order"`
}

// PlanPatch частичное обновление тарифа. Nil поля не меняются.
type PlanPatch struct {
	DisplayName      *string `json:"display_name" validate:"omitempty,min=1"`
	Description      *string `json:"description"`
	Price            *int64  `json:"price" validate:"omitempty,min=0"`
	Currency         *string `json:"currency" validate:"omitempty,len=3"`
	MaxHouses        *int    `json:"max_houses" validate:"omitempty,min=-1"`
	MaxRoomsPerHouse *int    `json:"max_rooms_per_house" validate:"omitempty,min=-1"`
	MaxItemsPerRoom  *int    `json:"max_items_per_room" validate:"omitempty,min=-1"`
	IsActive         *bool   `json:"is_active"`
	AllowTrial       *bool   `json:"allow_trial"`
	SortOrder        *int    `json:"sort_order"`
}

// Apply переносит заданные поля в p.
func (pp PlanPatch) Apply(p *Plan) {
	if pp.DisplayName != nil {
		p.DisplayName = *pp.DisplayName
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Currency != nil {
		p.Currency = *pp.Currency
	}
	if pp.MaxHouses != nil {
		p.MaxHouses = *pp.MaxHouses
	}
	if pp.MaxRoomsPerHouse != nil {
		p.MaxRoomsPerHouse = *pp.MaxRoomsPerHouse
	}
	if pp.MaxItemsPerRoom != nil {
		p.MaxItemsPerRoom = *pp.MaxItemsPerRoom
	}
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
	if pp.AllowTrial != nil {
		p.AllowTrial = *pp.AllowTrial
	}
	if pp.SortOrder != nil {
		p.SortOrder = *pp.SortOrder
	}
}
