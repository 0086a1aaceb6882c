package organization

import (
	"context"
	"sort"
	"sync"

	"food-donation-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	OrganizationRepository interface {
		CreateOrganization(ctx context.Context, org *entities.Organization) error
		GetOrganizations(ctx context.Context) ([]*entities.Organization, error)
		GetOrganizationByID(ctx context.Context, id string) (*entities.Organization, error)
	}

	organizationRepository struct {
		db *gorm.DB
	}

	memoryOrganizationRepository struct {
		mu   sync.RWMutex
		orgs []*entities.Organization
	}
)

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) CreateOrganization(ctx context.Context, org *entities.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) GetOrganizations(ctx context.Context) ([]*entities.Organization, error) {
	var orgs []*entities.Organization
	if err := r.db.WithContext(ctx).Order("distance ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) GetOrganizationByID(ctx context.Context, id string) (*entities.Organization, error) {
	var org entities.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// NewMemoryOrganizationRepository keeps organizations in process, ordered by distance.
func NewMemoryOrganizationRepository() OrganizationRepository {
	return &memoryOrganizationRepository{}
}

func (r *memoryOrganizationRepository) CreateOrganization(_ context.Context, org *entities.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	for _, existing := range r.orgs {
		if existing.ID == org.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *org
	r.orgs = append(r.orgs, &cp)
	sort.SliceStable(r.orgs, func(i, j int) bool {
		return r.orgs[i].Distance < r.orgs[j].Distance
	})
	return nil
}

func (r *memoryOrganizationRepository) GetOrganizations(_ context.Context) ([]*entities.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Organization, 0, len(r.orgs))
	for _, org := range r.orgs {
		cp := *org
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryOrganizationRepository) GetOrganizationByID(_ context.Context, id string) (*entities.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, org := range r.orgs {
		if org.ID.String() == id {
			cp := *org
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
