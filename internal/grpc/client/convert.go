package client

import (
	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

func planFromProto(p *entitlementspb.Plan) *models.Plan {
	if p == nil {
		return nil
	}
	return &models.Plan{
		ID:               p.GetId(),
		Name:             p.GetName(),
		DisplayName:      p.GetDisplayName(),
		Description:      p.GetDescription(),
		Price:            p.GetPrice(),
		Currency:         p.GetCurrency(),
		MaxHouses:        int(p.GetMaxHouses()),
		MaxRoomsPerHouse: int(p.GetMaxRoomsPerHouse()),
		MaxItemsPerRoom:  int(p.GetMaxItemsPerRoom()),
		IsActive:         p.GetIsActive(),
		AllowTrial:       p.GetAllowTrial(),
		SortOrder:        int(p.GetSortOrder()),
	}
}

func subscriptionFromProto(s *entitlementspb.Subscription) *models.Subscription {
	if s == nil {
		return nil
	}
	out := &models.Subscription{
		ID:                 s.GetId(),
		UserID:             s.GetUserId(),
		PlanID:             s.GetPlanId(),
		Plan:               planFromProto(s.GetPlan()),
		Status:             models.SubscriptionStatus(s.GetStatus()),
		CurrentPeriodStart: s.GetCurrentPeriodStart().AsTime(),
		CurrentPeriodEnd:   s.GetCurrentPeriodEnd().AsTime(),
		CancelAtPeriodEnd:  s.GetCancelAtPeriodEnd(),
		CreatedAt:          s.GetCreatedAt().AsTime(),
		UpdatedAt:          s.GetUpdatedAt().AsTime(),
	}
	if s.GetTrialEndsAt() != nil {
		t := s.GetTrialEndsAt().AsTime()
		out.TrialEndsAt = &t
	}
	return out
}

func usageFromProto(r *entitlementspb.ComputeUsageResponse) *models.Usage {
	return &models.Usage{
		Houses:        int(r.GetHouses()),
		Rooms:         int(r.GetRooms()),
		Items:         int(r.GetItems()),
		RoomsPerHouse: countsFromProto(r.GetRoomsPerHouse()),
		ItemsPerRoom:  countsFromProto(r.GetItemsPerRoom()),
	}
}

func countsFromProto(counts []*entitlementspb.ParentCount) map[int64]int {
	out := make(map[int64]int, len(counts))
	for _, c := range counts {
		out[c.GetId()] = int(c.GetCount())
	}
	return out
}

func decisionFromProto(d *entitlementspb.LimitDecision) *models.LimitDecision {
	return &models.LimitDecision{
		Allowed:   d.GetAllowed(),
		Dimension: models.Dimension(d.GetDimension()),
		Limit:     int(d.GetLimit()),
		Current:   int(d.GetCurrent()),
		Requested: int(d.GetRequested()),
	}
}
