package donation

import (
	"context"
	"sync"
	"time"

	"food-donation-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FeedbackRepository interface {
		CreateFeedback(ctx context.Context, feedback *entities.DonationFeedback) error
		GetFeedbackByDonationID(ctx context.Context, donationID string) (*entities.DonationFeedback, error)
		GetFeedbackForDonations(ctx context.Context, donationIDs []string) ([]*entities.DonationFeedback, error)
	}

	feedbackRepository struct {
		db *gorm.DB
	}

	memoryFeedbackRepository struct {
		mu       sync.RWMutex
		feedback map[uuid.UUID]*entities.DonationFeedback // by donation
		now      func() time.Time
	}
)

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// CreateFeedback relies on the unique donation_id index; a second entry
// for the same donation fails with gorm.ErrDuplicatedKey.
func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback *entities.DonationFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetFeedbackByDonationID(ctx context.Context, donationID string) (*entities.DonationFeedback, error) {
	var feedback entities.DonationFeedback
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) GetFeedbackForDonations(ctx context.Context, donationIDs []string) ([]*entities.DonationFeedback, error) {
	feedback := []*entities.DonationFeedback{}
	if len(donationIDs) == 0 {
		return feedback, nil
	}
	if err := r.db.WithContext(ctx).
		Where("donation_id IN ?", donationIDs).
		Order("created_at ASC").
		Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{
		feedback: map[uuid.UUID]*entities.DonationFeedback{},
		now:      time.Now,
	}
}

func (r *memoryFeedbackRepository) CreateFeedback(_ context.Context, feedback *entities.DonationFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.feedback[feedback.DonationID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = r.now()
	}
	if feedback.UpdatedAt.IsZero() {
		feedback.UpdatedAt = feedback.CreatedAt
	}

	cp := *feedback
	r.feedback[feedback.DonationID] = &cp
	return nil
}

func (r *memoryFeedbackRepository) GetFeedbackByDonationID(_ context.Context, donationID string) (*entities.DonationFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, err := uuid.Parse(donationID)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	f, ok := r.feedback[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memoryFeedbackRepository) GetFeedbackForDonations(_ context.Context, donationIDs []string) ([]*entities.DonationFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.DonationFeedback{}
	for _, raw := range donationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if f, ok := r.feedback[id]; ok {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}
