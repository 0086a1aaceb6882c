package organization

import (
	"context"
	"errors"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/pkg/record"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	OrganizationService interface {
		ListOrganizations(ctx context.Context, req domain.ListOrganizationsRequest) ([]*domain.Organization, error)
		GetOrganizationByID(ctx context.Context, id string) (*domain.Organization, error)
	}

	organizationService struct {
		organizationRepository OrganizationRepository
	}
)

func NewOrganizationService(organizationRepository OrganizationRepository) OrganizationService {
	return &organizationService{organizationRepository: organizationRepository}
}

func (s *organizationService) ListOrganizations(ctx context.Context, req domain.ListOrganizationsRequest) ([]*domain.Organization, error) {
	maxDistance := domain.DefaultMaxDistanceKm
	if req.MaxDistance != nil {
		if *req.MaxDistance < 0 {
			return nil, domain.ErrInvalidDistance
		}
		maxDistance = *req.MaxDistance
	}

	orgs, err := s.organizationRepository.GetOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Organization, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, ToDomain(org))
	}

	return record.Filter(result, req.Query, record.Constraints{
		Category:    req.Need,
		MaxDistance: &maxDistance,
	}), nil
}

func (s *organizationService) GetOrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrganizationNotFound
	}

	org, err := s.organizationRepository.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return ToDomain(org), nil
}

func ToDomain(org *entities.Organization) *domain.Organization {
	return &domain.Organization{
		ID:        org.ID.String(),
		Name:      org.Name,
		Address:   org.Address,
		Distance:  org.Distance,
		Contact:   org.Contact,
		Email:     org.Email,
		Needs:     SplitNeeds(org.Needs),
		Hours:     org.Hours,
		Latitude:  org.Latitude,
		Longitude: org.Longitude,
		CreatedAt: org.CreatedAt,
	}
}

func SplitNeeds(needs string) []string {
	out := []string{}
	for _, n := range strings.Split(needs, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func JoinNeeds(needs []string) string {
	return strings.Join(needs, ", ")
}
