package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// InventoryTree возвращает дома пользователя с комнатами и числом предметов в каждой.
// Дома и комнаты без детей тоже попадают в результат.
func (s *Storage) InventoryTree(ctx context.Context, userID string) ([]models.HouseNode, error) {
	const op = "storage.InventoryTree"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT h.id, r.id, COUNT(i.id)
			  FROM houses h
			  LEFT JOIN rooms r ON r.house_id = h.id
			  LEFT JOIN items i ON i.room_id = r.id
			  WHERE h.user_id = $1
			  GROUP BY h.id, r.id
			  ORDER BY h.id, r.id`
	rows, err := s.q(ctx).QueryContext(ctx, query, userID)
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
