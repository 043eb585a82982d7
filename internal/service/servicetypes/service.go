package servicetypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/techtorque/appointment-service/internal/domain"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
)

// Service сервис каталога типов обслуживания.
// Чтение доступно всем, изменение каталога — только администратору
type Service struct {
	repo   ServiceTypeRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceTypeRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListActive возвращает активные типы обслуживания
func (s *Service) ListActive(ctx context.Context) (*ServiceTypeListResponse, error) {
	serviceTypes, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return FromDomainServiceTypeList(serviceTypes), nil
}

// ListAll возвращает весь каталог, включая деактивированные типы
// (только администратор)
func (s *Service) ListAll(ctx context.Context, principal domain.Principal) (*ServiceTypeListResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	serviceTypes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return FromDomainServiceTypeList(serviceTypes), nil
}

// GetByID возвращает тип обслуживания по ID
func (s *Service) GetByID(ctx context.Context, id string) (*ServiceTypeResponse, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			return nil, ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return FromDomainServiceType(st), nil
}

// Create добавляет тип обслуживания в каталог (только администратор)
func (s *Service) Create(ctx context.Context, req *CreateServiceTypeRequest, principal domain.Principal) (*ServiceTypeResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info("Create: adding service type %q (category=%s) by admin=%s", req.Name, req.Category, principal.UserID)

	st := &domain.ServiceType{
		Name:                     strings.TrimSpace(req.Name),
		Category:                 strings.TrimSpace(req.Category),
		BasePrice:                req.BasePrice,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		Description:              req.Description,
		Active:                   true,
	}

	created, err := s.repo.Create(ctx, st)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeExists) {
			return nil, ErrServiceTypeExists
		}
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service type %q created with id=%s", created.Name, created.ID)
	return FromDomainServiceType(created), nil
}

// Update изменяет атрибуты типа обслуживания (только администратор)
func (s *Service) Update(ctx context.Context, id string, req *UpdateServiceTypeRequest, principal domain.Principal) (*ServiceTypeResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			return nil, ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		st.Category = strings.TrimSpace(*req.Category)
	}
	if req.BasePrice != nil {
		st.BasePrice = *req.BasePrice
	}
	if req.EstimatedDurationMinutes != nil {
		st.EstimatedDurationMinutes = *req.EstimatedDurationMinutes
	}
	if req.Description != nil {
		st.Description = req.Description
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if st.Name == "" || st.BasePrice < 0 || st.EstimatedDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: name, price and duration must stay valid", ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, st); err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			return nil, ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service type id=%s updated by admin=%s", id, principal.UserID)
	return FromDomainServiceType(st), nil
}

// Deactivate выводит тип обслуживания из каталога (только администратор).
// Существующие записи с этим типом продолжают обслуживаться
func (s *Service) Deactivate(ctx context.Context, id string, principal domain.Principal) error {
	if !principal.IsAdmin() {
		return ErrAccessDenied
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			return ErrServiceTypeNotFound
		}
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: service type id=%s deactivated by admin=%s", id, principal.UserID)
	return nil
}

func validateCreateRequest(req *CreateServiceTypeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if req.EstimatedDurationMinutes <= 0 {
		return fmt.Errorf("%w: estimated duration must be positive", ErrInvalidInput)
	}
	return nil
}
