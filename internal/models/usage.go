package models

// Dimension измерение лимита тарифа.
type Dimension string

const (
	DimensionHouses        Dimension = "houses"
	DimensionRoomsPerHouse Dimension = "roomsPerHouse"
	DimensionItemsPerRoom  Dimension = "itemsPerRoom"
)

// Usage снимок количества домов, комнат и вещей пользователя.
type Usage struct {
	Houses        int           `json:"houses"`
	Rooms         int           `json:"rooms"`
	Items         int           `json:"items"`
	RoomsPerHouse map[int64]int `json:"rooms_per_house"`
	ItemsPerRoom  map[int64]int `json:"items_per_room"`
}

// LimitDecision результат сравнения использования с лимитом.
type LimitDecision struct {
	Allowed   bool      `json:"allowed"`
	Dimension Dimension `json:"dimension"`
	Limit     int       `json:"limit"`
	Current   int       `json:"current"`
	Requested int       `json:"requested"`
}

// Headroom остаток по измерению, -1 значит без ограничения.
type Headroom struct {
	Dimension Dimension `json:"dimension"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
}

type UsageSummary struct {
	Usage    Usage      `json:"usage"`
	Plan     *Plan      `json:"plan"`
	Headroom []Headroom `json:"headroom"`
}
