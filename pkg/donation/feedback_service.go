package donation

import (
	"context"
	"errors"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/pkg/organization"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// FeedbackService rates donations. The donor, the account managing the
	// receiving organization and admins may leave one entry per donation.
	FeedbackService interface {
		AddFeedback(ctx context.Context, donationID string, req domain.DonationFeedbackRequest, userID, role string) (*domain.DonationFeedback, error)
		GetFeedback(ctx context.Context, donationID string, userID, role string) (*domain.DonationFeedback, error)
	}

	feedbackService struct {
		donationRepository     DonationRepository
		feedbackRepository     FeedbackRepository
		organizationRepository organization.OrganizationRepository
		validate               *validator.Validate
		log                    logger.Logger
	}
)

func NewFeedbackService(
	donationRepository DonationRepository,
	feedbackRepository FeedbackRepository,
	organizationRepository organization.OrganizationRepository,
	log logger.Logger,
) FeedbackService {
	return &feedbackService{
		donationRepository:     donationRepository,
		feedbackRepository:     feedbackRepository,
		organizationRepository: organizationRepository,
		validate:               utils.NewValidator(),
		log:                    log,
	}
}

func (s *feedbackService) AddFeedback(ctx context.Context, donationID string, req domain.DonationFeedbackRequest, userID, role string) (*domain.DonationFeedback, error) {
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	donation, err := s.accessibleDonation(ctx, donationID, userID, role)
	if err != nil {
		return nil, err
	}

	if _, err := s.feedbackRepository.GetFeedbackByDonationID(ctx, donationID); err == nil {
		return nil, domain.ErrFeedbackExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	feedback := &entities.DonationFeedback{
		ID:         uuid.New(),
		DonationID: donation.ID,
		Rating:     req.Rating,
		Comments:   strings.TrimSpace(req.Comments),
		CreatedBy:  author,
	}
	if err := s.feedbackRepository.CreateFeedback(ctx, feedback); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrFeedbackExists
		}
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"donation_id": donation.ID.String(),
		"rating":      feedback.Rating,
	}).Infof("donation feedback added")

	return FeedbackToDomain(feedback), nil
}

func (s *feedbackService) GetFeedback(ctx context.Context, donationID string, userID, role string) (*domain.DonationFeedback, error) {
	if _, err := s.accessibleDonation(ctx, donationID, userID, role); err != nil {
		return nil, err
	}

	feedback, err := s.feedbackRepository.GetFeedbackByDonationID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, err
	}
	return FeedbackToDomain(feedback), nil
}

func (s *feedbackService) accessibleDonation(ctx context.Context, donationID string, userID, role string) (*entities.Donation, error) {
	if _, err := uuid.Parse(donationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if role == domain.RoleAdmin || donation.UserID.String() == userID {
		return donation, nil
	}

	org, err := s.organizationRepository.GetOrganizationByID(ctx, donation.OrganizationID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if org != nil && org.UserID != nil && org.UserID.String() == userID {
		return donation, nil
	}
	return nil, domain.ErrUnauthorizedDonationAccess
}

func FeedbackToDomain(f *entities.DonationFeedback) *domain.DonationFeedback {
	return &domain.DonationFeedback{
		ID:         f.ID.String(),
		DonationID: f.DonationID.String(),
		Rating:     f.Rating,
		Comments:   f.Comments,
		CreatedBy:  f.CreatedBy.String(),
		CreatedAt:  f.CreatedAt,
	}
}
