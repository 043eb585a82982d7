package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/techtorque/appointment-service/internal/domain"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
)

// UseCase use case расчёта доступных слотов на дату
type UseCase struct {
	serviceTypeRepo ServiceTypeRepository
	calculator      AvailabilityCalculator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceTypeRepo ServiceTypeRepository,
	calculator AvailabilityCalculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceTypeRepo: serviceTypeRepo,
		calculator:      calculator,
		logger:          logger,
	}
}

// Execute возвращает сетку слотов на дату для указанного типа обслуживания.
// Праздник и нерабочий день дают пустой список слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, service=%q",
		req.Date.Format(domain.DateFormat), req.ServiceType)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ServiceType == "" {
		return nil, fmt.Errorf("%w: service type is required", ErrInvalidInput)
	}

	serviceType, err := uc.serviceTypeRepo.GetByName(ctx, req.ServiceType)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			uc.logger.Warn("CheckAvailability: service type %q not found", req.ServiceType)
			return nil, ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("%w: failed to get service type: %v", ErrInternal, err)
	}

	slots, err := uc.calculator.CalculateSlots(ctx, req.Date, serviceType.EstimatedDurationMinutes)
	if err != nil {
		uc.logger.Error("CheckAvailability: slot calculation failed: %v", err)
		return nil, fmt.Errorf("%w: slot calculation failed: %v", ErrInternal, err)
	}

	available := 0
	for _, s := range slots {
		if s.Available {
			available++
		}
	}
	uc.logger.Info("CheckAvailability: %d slots (%d available) for %s",
		len(slots), available, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date.Format(domain.DateFormat),
		ServiceType:     serviceType.Name,
		DurationMinutes: serviceType.EstimatedDurationMinutes,
		Slots:           FromDomainSlots(slots),
	}, nil
}
