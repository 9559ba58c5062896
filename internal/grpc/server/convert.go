package server

import (
	"sort"

	"google.golang.org/protobuf/types/known/timestamppb"

	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

func planToProto(p *models.Plan) *entitlementspb.Plan {
	if p == nil {
		return nil
	}
	return &entitlementspb.Plan{
		Id:               p.ID,
		Name:             p.Name,
		DisplayName:      p.DisplayName,
		Description:      p.Description,
		Price:            p.Price,
		Currency:         p.Currency,
		MaxHouses:        int32(p.MaxHouses),
		MaxRoomsPerHouse: int32(p.MaxRoomsPerHouse),
		MaxItemsPerRoom:  int32(p.MaxItemsPerRoom),
		IsActive:         p.IsActive,
		AllowTrial:       p.AllowTrial,
		SortOrder:        int32(p.SortOrder),
	}
}

func subscriptionToProto(s *models.Subscription) *entitlementspb.Subscription {
	if s == nil {
		return nil
	}
	out := &entitlementspb.Subscription{
		Id:                 s.ID,
		UserId:             s.UserID,
		PlanId:             s.PlanID,
		Plan:               planToProto(s.Plan),
		Status:             string(s.Status),
		CurrentPeriodStart: timestamppb.New(s.CurrentPeriodStart),
		CurrentPeriodEnd:   timestamppb.New(s.CurrentPeriodEnd),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CreatedAt:          timestamppb.New(s.CreatedAt),
		UpdatedAt:          timestamppb.New(s.UpdatedAt),
	}
	if s.TrialEndsAt != nil {
		out.TrialEndsAt = timestamppb.New(*s.TrialEndsAt)
	}
	return out
}

func usageToProto(u *models.Usage) *entitlementspb.ComputeUsageResponse {
	return &entitlementspb.ComputeUsageResponse{
		Houses:        int32(u.Houses),
		Rooms:         int32(u.Rooms),
		Items:         int32(u.Items),
		RoomsPerHouse: countsToProto(u.RoomsPerHouse),
		ItemsPerRoom:  countsToProto(u.ItemsPerRoom),
	}
}

// countsToProto упорядочивает по id, чтобы ответ не зависел от обхода map.
func countsToProto(counts map[int64]int) []*entitlementspb.ParentCount {
	out := make([]*entitlementspb.ParentCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, &entitlementspb.ParentCount{Id: id, Count: int32(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}

func decisionToProto(d *models.LimitDecision) *entitlementspb.LimitDecision {
	return &entitlementspb.LimitDecision{
		Allowed:   d.Allowed,
		Dimension: string(d.Dimension),
		Limit:     int32(d.Limit),
		Current:   int32(d.Current),
		Requested: int32(d.Requested),
	}
}
