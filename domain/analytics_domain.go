package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	MessageSuccessGetOrganizationAnalytics = "organization analytics retrieved successfully"
	MessageFailedGetOrganizationAnalytics  = "failed to retrieve organization analytics"
)

// AnalyticsPeriod is a trailing window ending today.
type AnalyticsPeriod string

const (
	PeriodWeek    AnalyticsPeriod = "week"
	PeriodMonth   AnalyticsPeriod = "month"
	PeriodQuarter AnalyticsPeriod = "quarter"
	PeriodYear    AnalyticsPeriod = "year"
)

var errUnknownPeriod = errors.New("unknown analytics period")

// ParseAnalyticsPeriod falls back to month for empty or unknown keys.
func ParseAnalyticsPeriod(key string) AnalyticsPeriod {
	p := AnalyticsPeriod(strings.ToLower(strings.TrimSpace(key)))
	if _, err := p.days(); err != nil {
		return PeriodMonth
	}
	return p
}

func (p AnalyticsPeriod) days() (int, error) {
	switch p {
	case PeriodWeek:
		return 7, nil
	case PeriodMonth:
		return 30, nil
	case PeriodQuarter:
		return 90, nil
	case PeriodYear:
		return 365, nil
	}
	return 0, errUnknownPeriod
}

// Since returns the first calendar day inside the window.
func (p AnalyticsPeriod) Since(today time.Time) time.Time {
	days, err := p.days()
	if err != nil {
		days, _ = PeriodMonth.days()
	}
	return today.AddDate(0, 0, -days)
}

type (
	TopDonor struct {
		Email         string `json:"email"`
		DonationCount int    `json:"donation_count"`
	}

	StatusCount struct {
		Status DonationStatus `json:"status"`
		Count  int            `json:"count"`
	}

	// OrganizationAnalytics is the full report for the organization's own
	// account and admins. Everyone else gets a Limited report with the name
	// and the all-time completed count only.
	OrganizationAnalytics struct {
		Name                  string          `json:"name"`
		Limited               bool            `json:"limited"`
		Period                AnalyticsPeriod `json:"period,omitempty"`
		Since                 *time.Time      `json:"since,omitempty"`
		TotalDonationsAllTime int             `json:"total_donations_all_time"`
		TotalDonationsPeriod  int             `json:"total_donations_period"`
		AverageRating         float64         `json:"average_rating"`
		TopDonors             []TopDonor      `json:"top_donors,omitempty"`
		StatusBreakdown       []StatusCount   `json:"donation_status_breakdown,omitempty"`
	}
)
