package donation

import (
	"context"
	"sort"
	"sync"
	"time"

	"food-donation-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetUserDonations(ctx context.Context, userID string) ([]*entities.Donation, error)
		GetOrganizationDonations(ctx context.Context, organizationID string) ([]*entities.Donation, error)
		UpdateDonationStatus(ctx context.Context, id string, status string, completedAt *time.Time) error
		DeleteDonation(ctx context.Context, id string) error
	}

	donationRepository struct {
		db *gorm.DB
	}

	memoryDonationRepository struct {
		mu        sync.RWMutex
		donations []*entities.Donation
		now       func() time.Time
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetUserDonations(ctx context.Context, userID string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetOrganizationDonations(ctx context.Context, organizationID string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) UpdateDonationStatus(ctx context.Context, id string, status string, completedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":       status,
		"completed_at": completedAt,
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *donationRepository) DeleteDonation(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Donation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NewMemoryDonationRepository keeps donations newest first, like the gorm listing.
func NewMemoryDonationRepository() DonationRepository {
	return &memoryDonationRepository{now: time.Now}
}

func (r *memoryDonationRepository) CreateDonation(_ context.Context, donation *entities.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	for _, existing := range r.donations {
		if existing.ID == donation.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = r.now()
	}
	if donation.UpdatedAt.IsZero() {
		donation.UpdatedAt = donation.CreatedAt
	}

	cp := *donation
	r.donations = append(r.donations, &cp)
	sort.SliceStable(r.donations, func(i, j int) bool {
		return r.donations[i].CreatedAt.After(r.donations[j].CreatedAt)
	})
	return nil
}

func (r *memoryDonationRepository) GetDonationByID(_ context.Context, id string) (*entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		cp := *r.donations[i]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryDonationRepository) GetUserDonations(_ context.Context, userID string) ([]*entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.Donation{}
	for _, d := range r.donations {
		if d.UserID.String() == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryDonationRepository) GetOrganizationDonations(_ context.Context, organizationID string) ([]*entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.Donation{}
	for _, d := range r.donations {
		if d.OrganizationID.String() == organizationID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryDonationRepository) UpdateDonationStatus(_ context.Context, id string, status string, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	d := r.donations[i]
	d.Status = status
	d.CompletedAt = completedAt
	d.UpdatedAt = r.now()
	return nil
}

func (r *memoryDonationRepository) DeleteDonation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.donations = append(r.donations[:i], r.donations[i+1:]...)
	return nil
}

func (r *memoryDonationRepository) indexOf(id string) int {
	for i, d := range r.donations {
		if d.ID.String() == id {
			return i
		}
	}
	return -1
}
