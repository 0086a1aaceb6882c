package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/mailing"
	"food-donation-tracker/pkg/expiry"
	"food-donation-tracker/pkg/organization"
	"food-donation-tracker/pkg/record"
	"food-donation-tracker/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.Donation, error)
		GetUserDonations(ctx context.Context, req domain.ListDonationsRequest, userID string) (*domain.DonationList, error)
		GetDonationByID(ctx context.Context, id string, userID string) (*domain.Donation, error)
		UpdateDonationStatus(ctx context.Context, id string, req domain.UpdateDonationStatusRequest, userID string) (*domain.Donation, error)
		DeleteDonation(ctx context.Context, id string, userID string) error
		GetDonationStatistics(ctx context.Context, userID string) (*domain.DonationStatistics, error)
		ListStatuses() []domain.DonationStatusInfo
	}

	donationService struct {
		donationRepository     DonationRepository
		organizationRepository organization.OrganizationRepository
		userRepository         user.UserRepository
		validate               *validator.Validate
		log                    logger.Logger
		sendMail               func(to, subject, body string) error
		now                    func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	organizationRepository organization.OrganizationRepository,
	userRepository user.UserRepository,
	log logger.Logger,
) DonationService {
	return &donationService{
		donationRepository:     donationRepository,
		organizationRepository: organizationRepository,
		userRepository:         userRepository,
		validate:               utils.NewValidator(),
		log:                    log,
		sendMail:               mailing.SendMail,
		now:                    time.Now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.Donation, error) {
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	quantity, _ := utils.ParsePositiveDecimal(req.Quantity)
	donationDate, err := expiry.ParseDate(strings.TrimSpace(req.DonationDate))
	if err != nil {
		return nil, domain.ErrInvalidDonationDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	org, err := s.organizationRepository.GetOrganizationByID(ctx, req.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	donation := &entities.Donation{
		ID:               uuid.New(),
		UserID:           userUUID,
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Quantity:         quantity,
		Unit:             req.Unit,
		Status:           string(domain.DonationStatusPending),
		DonationDate:     donationDate,
		Notes:            req.Notes,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"donation_id":     donation.ID.String(),
		"organization_id": org.ID.String(),
	}).Infof("donation created")

	return ToDomain(donation), nil
}

func (s *donationService) GetUserDonations(ctx context.Context, req domain.ListDonationsRequest, userID string) (*domain.DonationList, error) {
	status := strings.TrimSpace(req.Status)
	if status != "" && status != record.CategoryAll {
		if _, err := domain.ParseDonationStatus(status); err != nil {
			return nil, err
		}
	}

	donations, err := s.donationRepository.GetUserDonations(ctx, userID)
	if err != nil {
		return nil, err
	}

	all := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		all = append(all, ToDomain(d))
	}

	filtered := record.Filter(all, req.Query, record.Constraints{Category: status})
	page, limit := record.NormalizePage(req.Page, req.Limit)
	total := int64(len(filtered))

	return &domain.DonationList{
		Donations: record.Paginate(filtered, page, limit),
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: record.TotalPages(total, limit),
		},
	}, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string, userID string) (*domain.Donation, error) {
	donation, err := s.ownedDonation(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return ToDomain(donation), nil
}

func (s *donationService) UpdateDonationStatus(ctx context.Context, id string, req domain.UpdateDonationStatusRequest, userID string) (*domain.Donation, error) {
	status, err := domain.ParseDonationStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, err
	}

	donation, err := s.ownedDonation(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	previous := domain.DonationStatus(donation.Status)

	completedAt := donation.CompletedAt
	switch {
	case status == domain.DonationStatusCompleted && previous != domain.DonationStatusCompleted:
		now := s.now()
		completedAt = &now
	case status != domain.DonationStatusCompleted:
		completedAt = nil
	}

	if err := s.donationRepository.UpdateDonationStatus(ctx, id, string(status), completedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	donation.Status = string(status)
	donation.CompletedAt = completedAt

	if status == domain.DonationStatusConfirmed && previous != domain.DonationStatusConfirmed {
		s.notifyStatus(ctx, donation)
	}

	return ToDomain(donation), nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id string, userID string) error {
	if _, err := s.ownedDonation(ctx, id, userID); err != nil {
		return err
	}

	if err := s.donationRepository.DeleteDonation(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}
	return nil
}

func (s *donationService) GetDonationStatistics(ctx context.Context, userID string) (*domain.DonationStatistics, error) {
	donations, err := s.donationRepository.GetUserDonations(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.DonationStatistics{
		TotalDonations: len(donations),
		ByStatus:       make(map[string]int, len(domain.DonationStatuses())),
	}
	for _, status := range domain.DonationStatuses() {
		stats.ByStatus[string(status)] = 0
	}

	itemsDonated := decimal.Zero
	organizations := make(map[uuid.UUID]struct{})
	for _, d := range donations {
		stats.ByStatus[d.Status]++
		if d.Status != string(domain.DonationStatusCompleted) {
			continue
		}
		itemsDonated = itemsDonated.Add(d.Quantity)
		organizations[d.OrganizationID] = struct{}{}
	}

	stats.CompletedDonations = stats.ByStatus[string(domain.DonationStatusCompleted)]
	stats.PendingDonations = stats.ByStatus[string(domain.DonationStatusPending)]
	stats.OrganizationsHelped = len(organizations)
	stats.TotalItemsDonated = int(itemsDonated.IntPart())

	items := float64(stats.TotalItemsDonated)
	stats.FoodWasteSaved = items * domain.KgPerDonatedItem
	stats.EstimatedCO2Reduced = stats.FoodWasteSaved * domain.CO2KgPerFoodKg
	stats.EstimatedMealsServed = int(items * domain.MealsPerDonatedItem)
	stats.EstimatedImpact = fmt.Sprintf("You've helped provide approximately %d meals to those in need.", stats.EstimatedMealsServed)

	return stats, nil
}

func (s *donationService) ListStatuses() []domain.DonationStatusInfo {
	statuses := domain.DonationStatuses()
	out := make([]domain.DonationStatusInfo, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, status.Info())
	}
	return out
}

func (s *donationService) ownedDonation(ctx context.Context, id string, userID string) (*entities.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if donation.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	return donation, nil
}

// notifyStatus mails the donor. Failures are logged, never returned.
func (s *donationService) notifyStatus(ctx context.Context, donation *entities.Donation) {
	if s.userRepository == nil || s.sendMail == nil {
		return
	}

	donor, err := s.userRepository.GetUserByID(ctx, donation.UserID.String())
	if err != nil {
		s.log.Warnf("donation %s: cannot load donor for notification: %v", donation.ID, err)
		return
	}

	status := domain.DonationStatus(donation.Status)
	body, err := mailing.RenderDonationStatus(mailing.DonationStatusMail{
		Username:     donor.Username,
		DonationName: donation.Name,
		Organization: donation.OrganizationName,
		Status:       status.Label(),
		AppURL:       utils.GetConfig("APP_URL"),
	})
	if err != nil {
		s.log.Errorf("donation %s: render notification: %v", donation.ID, err)
		return
	}

	subject := fmt.Sprintf("Your donation %q is %s", donation.Name, strings.ToLower(status.Label()))
	if err := s.sendMail(donor.Email, subject, body); err != nil {
		if errors.Is(err, mailing.ErrMailDisabled) {
			s.log.Debugf("donation %s: mail disabled, skipping notification", donation.ID)
			return
		}
		s.log.Errorf("donation %s: send notification: %v", donation.ID, err)
	}
}

func ToDomain(d *entities.Donation) *domain.Donation {
	status := domain.DonationStatus(d.Status)
	return &domain.Donation{
		ID:               d.ID.String(),
		UserID:           d.UserID.String(),
		Name:             d.Name,
		Description:      d.Description,
		Quantity:         d.Quantity,
		Unit:             d.Unit,
		OrganizationID:   d.OrganizationID.String(),
		OrganizationName: d.OrganizationName,
		Status:           status,
		StatusLabel:      status.Label(),
		StatusColor:      status.Color(),
		DonationDate:     d.DonationDate,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		CompletedAt:      d.CompletedAt,
	}
}
