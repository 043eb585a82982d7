package servicetypes

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// CreateServiceTypeRequest запрос на создание типа обслуживания
type CreateServiceTypeRequest struct {
	Name                     string  `json:"name"`
	Category                 string  `json:"category"`
	BasePrice                float64 `json:"basePrice"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	Description              *string `json:"description,omitempty"`
}

// UpdateServiceTypeRequest запрос на изменение типа обслуживания
type UpdateServiceTypeRequest struct {
	Name                     *string  `json:"name,omitempty"`
	Category                 *string  `json:"category,omitempty"`
	BasePrice                *float64 `json:"basePrice,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`
	Description              *string  `json:"description,omitempty"`
	Active                   *bool    `json:"active,omitempty"`
}

// ServiceTypeResponse ответ с данными типа обслуживания
type ServiceTypeResponse struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Category                 string    `json:"category"`
	BasePrice                float64   `json:"basePrice"`
	EstimatedDurationMinutes int       `json:"estimatedDurationMinutes"`
	Description              *string   `json:"description,omitempty"`
	Active                   bool      `json:"active"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// ServiceTypeListResponse ответ со списком типов обслуживания
type ServiceTypeListResponse struct {
	ServiceTypes []ServiceTypeResponse `json:"serviceTypes"`
}

// FromDomainServiceType конвертирует domain модель в DTO
func FromDomainServiceType(st *domain.ServiceType) *ServiceTypeResponse {
	if st == nil {
		return nil
	}
	return &ServiceTypeResponse{
		ID:                       st.ID,
		Name:                     st.Name,
		Category:                 st.Category,
		BasePrice:                st.BasePrice,
		EstimatedDurationMinutes: st.EstimatedDurationMinutes,
		Description:              st.Description,
		Active:                   st.Active,
		CreatedAt:                st.CreatedAt,
		UpdatedAt:                st.UpdatedAt,
	}
}

// FromDomainServiceTypeList конвертирует список domain моделей в DTO
func FromDomainServiceTypeList(serviceTypes []*domain.ServiceType) *ServiceTypeListResponse {
	resp := &ServiceTypeListResponse{
		ServiceTypes: make([]ServiceTypeResponse, 0, len(serviceTypes)),
	}
	for _, st := range serviceTypes {
		resp.ServiceTypes = append(resp.ServiceTypes, *FromDomainServiceType(st))
	}
	return resp
}
