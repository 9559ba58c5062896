package models

// House, Room и Item принадлежат приложению учета вещей.
// Сервис подписок только читает их для подсчета использования.

type House struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type Room struct {
	ID      int64  `json:"id"`
	HouseID int64  `json:"house_id"`
	Name    string `json:"name"`
}

type Item struct {
	ID     int64  `json:"id"`
	RoomID int64  `json:"room_id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
}

// HouseNode дом пользователя вместе с комнатами.
type HouseNode struct {
	ID    int64
	Rooms []RoomNode
}

// RoomNode комната и количество вещей в ней.
type RoomNode struct {
	ID        int64
	ItemCount int
}
