package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// CreatePlan сохраняет тариф и заполняет его ID.
func (s *Storage) CreatePlan(ctx context.Context, p *models.Plan) error {
	const op = "storage.sqlite.CreatePlan"
	row := planRowFromModel(p)
	row.ID = 0
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		return wrapErr(op, err)
	}
	p.ID = row.ID
	return nil
}

// UpdatePlan перезаписывает все поля тарифа, кроме name.
func (s *Storage) UpdatePlan(ctx context.Context, p *models.Plan) error {
	const op = "storage.sqlite.UpdatePlan"
	res := s.conn(ctx).Model(&planRow{}).Where("id = ?", p.ID).Updates(map[string]any{
		"display_name":        p.DisplayName,
		"description":         p.Description,
		"price":               p.Price,
		"currency":            p.Currency,
		"max_houses":          p.MaxHouses,
		"max_rooms_per_house": p.MaxRoomsPerHouse,
		"max_items_per_room":  p.MaxItemsPerRoom,
		"is_active":           p.IsActive,
		"allow_trial":         p.AllowTrial,
		"sort_order":          p.SortOrder,
		"updated_at":          utc(p.UpdatedAt),
	})
	if res.Error != nil {
		return wrapErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr(op, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetPlanByID возвращает тариф по ID независимо от is_active.
func (s *Storage) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.sqlite.GetPlanByID"
	var row planRow
	if err := s.conn(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// GetPlanByName возвращает тариф по имени независимо от is_active.
func (s *Storage) GetPlanByName(ctx context.Context, name string) (*models.Plan, error) {
	const op = "storage.sqlite.GetPlanByName"
	var row planRow
	if err := s.conn(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return row.toModel(), nil
}

// ListPlans возвращает тарифы, отсортированные по sort_order и id.
func (s *Storage) ListPlans(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	const op = "storage.sqlite.ListPlans"
	q := s.conn(ctx).Order("sort_order, id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []planRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	plans := make([]*models.Plan, 0, len(rows))
	for i := range rows {
		plans = append(plans, rows[i].toModel())
	}
	return plans, nil
}
