package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
	"github.com/heavyrent/rental-service/internal/validation"
)

type Service struct {
	store    EquipmentStore
	profiles ProfileResolver
	logger   Logger
}

func NewService(store EquipmentStore, profiles ProfileResolver, logger Logger) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		logger:   logger,
	}
}

// Create lists a new item owned by the caller. Only operators and admins may list equipment.
func (s *Service) Create(ctx context.Context, session *domain.Session, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("CreateEquipment: user=%s, name=%q, category=%q", session.UserID, req.Name, req.Category)

	if verr := validation.Struct(req); verr != nil {
		s.logger.Warn("CreateEquipment: validation failed: %v", verr)
		return nil, verr
	}

	owner, err := s.profiles.ResolveIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	role, err := s.profiles.ResolveRole(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleOperator && role != domain.RoleAdmin {
		s.logger.Warn("CreateEquipment: profile=%s with role=%s is not an operator", owner.ID, role)
		return nil, ErrNotOperator
	}

	created, err := s.store.Create(ctx, &domain.Equipment{
		OwnerID:        owner.ID,
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		Description:    req.Description,
		DailyRate:      req.DailyRate,
		City:           strings.TrimSpace(req.City),
		Address:        strings.TrimSpace(req.Address),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         domain.EquipmentAvailable,
		Specifications: req.Specifications,
		Images:         req.Images,
	})
	if err != nil {
		s.logger.Error("CreateEquipment: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateEquipment: created equipment id=%s owner=%s", created.ID, owner.ID)
	return models.FromDomainEquipment(created), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.EquipmentResponse, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("GetEquipment: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEquipment(e), nil
}

// UpdateStatus is reserved to the owner. Booking transitions never change equipment status.
func (s *Service) UpdateStatus(ctx context.Context, session *domain.Session, id uuid.UUID, req *models.UpdateStatusRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("UpdateEquipmentStatus: user=%s, equipment=%s, status=%s", session.UserID, id, req.Status)

	if verr := validation.Struct(req); verr != nil {
		return nil, verr
	}

	caller, err := s.profiles.ResolveIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("UpdateEquipmentStatus: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - get equipment: %v", ErrInternal, err)
	}
	if e.OwnerID != caller.ID {
		s.logger.Warn("UpdateEquipmentStatus: profile=%s is not the owner of equipment=%s", caller.ID, id)
		return nil, ErrNotOwner
	}

	status := domain.EquipmentStatus(req.Status)
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("UpdateEquipmentStatus: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	e.Status = status
	s.logger.Info("UpdateEquipmentStatus: equipment=%s is now %s", id, status)
	return models.FromDomainEquipment(e), nil
}
