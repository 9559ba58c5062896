package sqlite

import (
	"time"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

type userRow struct {
	ID              string     `gorm:"primaryKey;type:text"`
	Email           string     `gorm:"uniqueIndex;not null"`
	Name            string     `gorm:"not null"`
	PasswordHash    string     `gorm:"not null"`
	Role            string     `gorm:"not null"`
	TrialStartedAt  *time.Time
	TrialEndsAt     *time.Time `gorm:"index"`
	HasUsedTrial    bool       `gorm:"not null"`
	RequiresUpgrade bool       `gorm:"not null"`
	CreatedAt       time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime:false"`
}

func (userRow) TableName() string { return "users" }

type planRow struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	Name             string    `gorm:"uniqueIndex;not null"`
	DisplayName      string    `gorm:"not null"`
	Description      string    `gorm:"not null"`
	Price            int64     `gorm:"not null"`
	Currency         string    `gorm:"not null"`
	MaxHouses        int       `gorm:"not null"`
	MaxRoomsPerHouse int       `gorm:"not null"`
	MaxItemsPerRoom  int       `gorm:"not null"`
	IsActive         bool      `gorm:"not null"`
	AllowTrial       bool      `gorm:"not null"`
	SortOrder        int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (planRow) TableName() string { return "subscription_plans" }

type subscriptionRow struct {
	ID                 int64    `gorm:"primaryKey;autoIncrement"`
	UserID             string   `gorm:"not null;index"`
	User               *userRow `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PlanID             int64    `gorm:"not null"`
	Plan               *planRow `gorm:"foreignKey:PlanID;constraint:OnDelete:RESTRICT"`
	Status             string   `gorm:"not null;index:idx_subscriptions_status_updated_at,priority:1"`
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	TrialEndsAt        *time.Time
	CancelAtPeriodEnd  bool `gorm:"not null"`
	ExternalID         *string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false;index:idx_subscriptions_status_updated_at,priority:2"`
}

func (subscriptionRow) TableName() string { return "subscriptions" }

type houseRow struct {
	ID     int64    `gorm:"primaryKey;autoIncrement"`
	UserID string   `gorm:"not null;index"`
	User   *userRow `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name   string   `gorm:"not null"`
}

func (houseRow) TableName() string { return "houses" }

type roomRow struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	HouseID int64     `gorm:"not null;index"`
	House   *houseRow `gorm:"foreignKey:HouseID;constraint:OnDelete:CASCADE"`
	Name    string    `gorm:"not null"`
}

func (roomRow) TableName() string { return "rooms" }

type itemRow struct {
	ID     int64    `gorm:"primaryKey;autoIncrement"`
	RoomID int64    `gorm:"not null;index"`
	Room   *roomRow `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Name   string   `gorm:"not null"`
	Price  int64    `gorm:"not null"`
}

func (itemRow) TableName() string { return "items" }

func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func userRowFromModel(u *models.User) userRow {
	return userRow{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		PasswordHash:    u.PasswordHash,
		Role:            string(u.Role),
		TrialStartedAt:  utcPtr(u.TrialStartedAt),
		TrialEndsAt:     utcPtr(u.TrialEndsAt),
		HasUsedTrial:    u.HasUsedTrial,
		RequiresUpgrade: u.RequiresUpgrade,
		CreatedAt:       utc(u.CreatedAt),
		UpdatedAt:       utc(u.UpdatedAt),
	}
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:              r.ID,
		Email:           r.Email,
		Name:            r.Name,
		PasswordHash:    r.PasswordHash,
		Role:            models.Role(r.Role),
		TrialStartedAt:  utcPtr(r.TrialStartedAt),
		TrialEndsAt:     utcPtr(r.TrialEndsAt),
		HasUsedTrial:    r.HasUsedTrial,
		RequiresUpgrade: r.RequiresUpgrade,
		CreatedAt:       utc(r.CreatedAt),
		UpdatedAt:       utc(r.UpdatedAt),
	}
}

func planRowFromModel(p *models.Plan) planRow {
	return planRow{
		ID:               p.ID,
		Name:             p.Name,
		DisplayName:      p.DisplayName,
		Description:      p.Description,
		Price:            p.Price,
		Currency:         p.Currency,
		MaxHouses:        p.MaxHouses,
		MaxRoomsPerHouse: p.MaxRoomsPerHouse,
		MaxItemsPerRoom:  p.MaxItemsPerRoom,
		IsActive:         p.IsActive,
		AllowTrial:       p.AllowTrial,
		SortOrder:        p.SortOrder,
		CreatedAt:        utc(p.CreatedAt),
		UpdatedAt:        utc(p.UpdatedAt),
	}
}

func (r *planRow) toModel() *models.Plan {
	return &models.Plan{
		ID:               r.ID,
		Name:             r.Name,
		DisplayName:      r.DisplayName,
		Description:      r.Description,
		Price:            r.Price,
		Currency:         r.Currency,
		MaxHouses:        r.MaxHouses,
		MaxRoomsPerHouse: r.MaxRoomsPerHouse,
		MaxItemsPerRoom:  r.MaxItemsPerRoom,
		IsActive:         r.IsActive,
		AllowTrial:       r.AllowTrial,
		SortOrder:        r.SortOrder,
		CreatedAt:        utc(r.CreatedAt),
		UpdatedAt:        utc(r.UpdatedAt),
	}
}

func subscriptionRowFromModel(s *models.Subscription) subscriptionRow {
	return subscriptionRow{
		ID:                 s.ID,
		UserID:             s.UserID,
		PlanID:             s.PlanID,
		Status:             string(s.Status),
		CurrentPeriodStart: utc(s.CurrentPeriodStart),
		CurrentPeriodEnd:   utc(s.CurrentPeriodEnd),
		TrialEndsAt:        utcPtr(s.TrialEndsAt),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		ExternalID:         s.ExternalID,
		CreatedAt:          utc(s.CreatedAt),
		UpdatedAt:          utc(s.UpdatedAt),
	}
}

func (r *subscriptionRow) toModel() *models.Subscription {
	s := &models.Subscription{
		ID:                 r.ID,
		UserID:             r.UserID,
		PlanID:             r.PlanID,
		Status:             models.SubscriptionStatus(r.Status),
		CurrentPeriodStart: utc(r.CurrentPeriodStart),
		CurrentPeriodEnd:   utc(r.CurrentPeriodEnd),
		TrialEndsAt:        utcPtr(r.TrialEndsAt),
		CancelAtPeriodEnd:  r.CancelAtPeriodEnd,
		ExternalID:         r.ExternalID,
		CreatedAt:          utc(r.CreatedAt),
		UpdatedAt:          utc(r.UpdatedAt),
	}
	if r.Plan != nil {
		s.Plan = r.Plan.toModel()
	}
	return s
}
