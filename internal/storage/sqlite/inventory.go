package sqlite

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// InventoryTree возвращает дома пользователя с комнатами и числом предметов в каждой.
func (s *Storage) InventoryTree(ctx context.Context, userID string) ([]models.HouseNode, error) {
	const op = "storage.sqlite.InventoryTree"
	rows, err := s.conn(ctx).Raw(`SELECT h.id, r.id, COUNT(i.id)
		FROM houses h
		LEFT JOIN rooms r ON r.house_id = h.id
		LEFT JOIN items i ON i.room_id = r.id
		WHERE h.user_id = ?
		GROUP BY h.id, r.id
		ORDER BY h.id, r.id`, userID).Rows()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var tree []models.HouseNode
	for rows.Next() {
		var houseID int64
		var roomID *int64
		var items int
		if err := rows.Scan(&houseID, &roomID, &items); err != nil {
			return nil, wrapErr(op, err)
		}
		if len(tree) == 0 || tree[len(tree)-1].ID != houseID {
			tree = append(tree, models.HouseNode{ID: houseID})
		}
		if roomID != nil {
			h := &tree[len(tree)-1]
			h.Rooms = append(h.Rooms, models.RoomNode{ID: *roomID, ItemCount: items})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return tree, nil
}

// Дом, комнаты и предметы создает приложение каталога. Методы ниже нужны для
// локального наполнения базы и тестов.

// AddHouse создает дом пользователя.
func (s *Storage) AddHouse(ctx context.Context, h *models.House) error {
	const op = "storage.sqlite.AddHouse"
	row := houseRow{UserID: h.UserID, Name: h.Name}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	h.ID = row.ID
	return nil
}

// AddRoom создает комнату в доме.
func (s *Storage) AddRoom(ctx context.Context, r *models.Room) error {
	const op = "storage.sqlite.AddRoom"
	row := roomRow{HouseID: r.HouseID, Name: r.Name}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	r.ID = row.ID
	return nil
}

// AddItem создает предмет в комнате.
func (s *Storage) AddItem(ctx context.Context, i *models.Item) error {
	const op = "storage.sqlite.AddItem"
	row := itemRow{RoomID: i.RoomID, Name: i.Name, Price: i.Price}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	i.ID = row.ID
	return nil
}
