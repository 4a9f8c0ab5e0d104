package list_equipment

import (
	"context"
	"fmt"
	"sort"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
)

type UseCase struct {
	equipmentRepo EquipmentRepository
	logger        Logger
}

func NewUseCase(equipmentRepo EquipmentRepository, logger Logger) *UseCase {
	return &UseCase{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// Execute returns one catalog page. Without a geo point, paging happens in SQL.
// With one, every SQL match is loaded, filtered by radius and sorted by distance,
// since the radius is evaluated here rather than in the database.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.EquipmentListResponse, error) {
	// 1. Validate filters
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListEquipment: validation failed: %v", err)
		return nil, err
	}
	filter := toFilter(req)

	// 2. Query
	var (
		page  []*domain.Equipment
		total int
		err   error
	)
	if filter.HasGeo() {
		page, total, err = uc.listNearby(ctx, filter)
	} else {
		page, total, err = uc.listPaged(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Build response
	resp := &models.EquipmentListResponse{
		Equipment: make([]*models.EquipmentResponse, 0, len(page)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
		HasMore:   filter.Page*filter.Limit < total,
	}
	for _, e := range page {
		item := models.FromDomainEquipment(e)
		if filter.HasGeo() {
			if d, ok := e.DistanceFrom(*filter.Latitude, *filter.Longitude); ok {
				item.DistanceKm = &d
			}
		}
		resp.Equipment = append(resp.Equipment, item)
	}

	uc.logger.Info("ListEquipment: returned %d of %d items (page=%d)", len(resp.Equipment), total, filter.Page)
	return resp, nil
}

func (uc *UseCase) listPaged(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, int, error) {
	items, err := uc.equipmentRepo.List(ctx, filter, true)
	if err != nil {
		uc.logger.Error("ListEquipment: failed to list equipment: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to list equipment: %v", ErrInternal, err)
	}
	total, err := uc.equipmentRepo.Count(ctx, filter)
	if err != nil {
		uc.logger.Error("ListEquipment: failed to count equipment: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to count equipment: %v", ErrInternal, err)
	}
	return items, total, nil
}

func (uc *UseCase) listNearby(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, int, error) {
	all, err := uc.equipmentRepo.List(ctx, filter, false)
	if err != nil {
		uc.logger.Error("ListEquipment: failed to list equipment: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to list equipment: %v", ErrInternal, err)
	}

	lat, lng := *filter.Latitude, *filter.Longitude
	nearby := make([]*domain.Equipment, 0, len(all))
	for _, e := range all {
		if e.WithinRadius(lat, lng, filter.RadiusKm) {
			nearby = append(nearby, e)
		}
	}

	// Closest first; items without coordinates keep their order at the end.
	sort.SliceStable(nearby, func(i, j int) bool {
		di, iok := nearby[i].DistanceFrom(lat, lng)
		dj, jok := nearby[j].DistanceFrom(lat, lng)
		if iok != jok {
			return iok
		}
		return iok && di < dj
	})

	total := len(nearby)
	from := filter.Offset()
	if from > total {
		from = total
	}
	to := from + filter.Limit
	if to > total {
		to = total
	}
	return nearby[from:to], total, nil
}
