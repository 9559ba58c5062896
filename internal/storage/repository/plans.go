package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

const planColumns = `id, name, display_name, description, price, currency, max_houses,
	max_rooms_per_house, max_items_per_room, is_active, allow_trial, sort_order,
	created_at, updated_at`

func scanPlan(row rowScanner) (*models.Plan, error) {
	p := &models.Plan{}
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Description, &p.Price, &p.Currency,
		&p.MaxHouses, &p.MaxRoomsPerHouse, &p.MaxItemsPerRoom, &p.IsActive, &p.AllowTrial,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePlan сохраняет тариф и заполняет его ID.
func (s *Storage) CreatePlan(ctx context.Context, p *models.Plan) error {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_plans (name, display_name, description, price, currency,
			      max_houses, max_rooms_per_house, max_items_per_room, is_active, allow_trial,
			      sort_order, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	err := s.q(ctx).QueryRowContext(ctx, query,
		p.Name, p.DisplayName, p.Description, p.Price, p.Currency, p.MaxHouses,
		p.MaxRoomsPerHouse, p.MaxItemsPerRoom, p.IsActive, p.AllowTrial, p.SortOrder,
		p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// UpdatePlan перезаписывает все поля тарифа, кроме name.
func (s *Storage) UpdatePlan(ctx context.Context, p *models.Plan) error {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscription_plans
			  SET display_name = $1, description = $2, price = $3, currency = $4,
			      max_houses = $5, max_rooms_per_house = $6, max_items_per_room = $7,
			      is_active = $8, allow_trial = $9, sort_order = $10, updated_at = $11
			  WHERE id = $12`
	res, err := s.q(ctx).ExecContext(ctx, query,
		p.DisplayName, p.Description, p.Price, p.Currency, p.MaxHouses, p.MaxRoomsPerHouse,
		p.MaxItemsPerRoom, p.IsActive, p.AllowTrial, p.SortOrder, p.UpdatedAt, p.ID)
	return expectOne(op, res, err)
}

// GetPlanByID возвращает тариф по ID независимо от is_active.
func (s *Storage) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.GetPlanByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	p, err := scanPlan(s.q(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

// GetPlanByName возвращает тариф по имени независимо от is_active.
func (s *Storage) GetPlanByName(ctx context.Context, name string) (*models.Plan, error) {
	const op = "storage.GetPlanByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE name = $1`
	p, err := scanPlan(s.q(ctx).QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

// ListPlans возвращает тарифы, отсортированные по sort_order и id.
func (s *Storage) ListPlans(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans
			  WHERE ($1 = FALSE OR is_active = TRUE)
			  ORDER BY sort_order, id`
	rows, err := s.q(ctx).QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return plans, nil
}
