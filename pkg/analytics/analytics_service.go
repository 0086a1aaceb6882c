package analytics

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/pkg/donation"
	"food-donation-tracker/pkg/expiry"
	"food-donation-tracker/pkg/organization"
	"food-donation-tracker/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const topDonorLimit = 5

type (
	AnalyticsService interface {
		GetOrganizationAnalytics(ctx context.Context, organizationID, period, userID, role string) (*domain.OrganizationAnalytics, error)
	}

	analyticsService struct {
		organizationRepository organization.OrganizationRepository
		donationRepository     donation.DonationRepository
		feedbackRepository     donation.FeedbackRepository
		userRepository         user.UserRepository
		log                    logger.Logger
		loc                    *time.Location
		now                    func() time.Time
	}
)

func NewAnalyticsService(
	organizationRepository organization.OrganizationRepository,
	donationRepository donation.DonationRepository,
	feedbackRepository donation.FeedbackRepository,
	userRepository user.UserRepository,
	log logger.Logger,
) AnalyticsService {
	return &analyticsService{
		organizationRepository: organizationRepository,
		donationRepository:     donationRepository,
		feedbackRepository:     feedbackRepository,
		userRepository:         userRepository,
		log:                    log,
		loc:                    utils.GetLocation(),
		now:                    time.Now,
	}
}

func (s *analyticsService) GetOrganizationAnalytics(ctx context.Context, organizationID, period, userID, role string) (*domain.OrganizationAnalytics, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, domain.ErrOrganizationNotFound
	}

	org, err := s.organizationRepository.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	donations, err := s.donationRepository.GetOrganizationDonations(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	completed := make([]*entities.Donation, 0, len(donations))
	for _, d := range donations {
		if d.Status == string(domain.DonationStatusCompleted) {
			completed = append(completed, d)
		}
	}

	report := &domain.OrganizationAnalytics{
		Name:                  org.Name,
		TotalDonationsAllTime: len(completed),
	}

	managed := org.UserID != nil && org.UserID.String() == userID
	if !managed && role != domain.RoleAdmin {
		report.Limited = true
		return report, nil
	}

	p := domain.ParseAnalyticsPeriod(period)
	since := p.Since(expiry.Today(s.now(), s.loc))
	report.Period = p
	report.Since = &since

	for _, d := range completed {
		if !d.DonationDate.Before(since) {
			report.TotalDonationsPeriod++
		}
	}

	if report.AverageRating, err = s.averageRating(ctx, completed); err != nil {
		return nil, err
	}
	report.TopDonors = s.topDonors(ctx, completed)
	report.StatusBreakdown = statusBreakdown(donations)

	return report, nil
}

// averageRating is rounded to one decimal; zero when nothing was rated.
func (s *analyticsService) averageRating(ctx context.Context, completed []*entities.Donation) (float64, error) {
	ids := make([]string, 0, len(completed))
	for _, d := range completed {
		ids = append(ids, d.ID.String())
	}

	feedback, err := s.feedbackRepository.GetFeedbackForDonations(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(feedback) == 0 {
		return 0, nil
	}

	sum := 0
	for _, f := range feedback {
		sum += f.Rating
	}
	avg := float64(sum) / float64(len(feedback))
	return math.Round(avg*10) / 10, nil
}

func (s *analyticsService) topDonors(ctx context.Context, completed []*entities.Donation) []domain.TopDonor {
	counts := map[uuid.UUID]int{}
	for _, d := range completed {
		counts[d.UserID]++
	}

	donors := make([]domain.TopDonor, 0, len(counts))
	for id, n := range counts {
		email := id.String()
		if u, err := s.userRepository.GetUserByID(ctx, id.String()); err == nil {
			email = u.Email
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warnf("analytics: load donor %s: %v", id, err)
		}
		donors = append(donors, domain.TopDonor{Email: email, DonationCount: n})
	}

	sort.Slice(donors, func(i, j int) bool {
		if donors[i].DonationCount != donors[j].DonationCount {
			return donors[i].DonationCount > donors[j].DonationCount
		}
		return donors[i].Email < donors[j].Email
	})
	if len(donors) > topDonorLimit {
		donors = donors[:topDonorLimit]
	}
	return donors
}

// statusBreakdown counts every status present, ordered by status key.
func statusBreakdown(donations []*entities.Donation) []domain.StatusCount {
	counts := map[string]int{}
	for _, d := range donations {
		counts[d.Status]++
	}

	out := make([]domain.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, domain.StatusCount{Status: domain.DonationStatus(status), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Status < out[j].Status
	})
	return out
}
