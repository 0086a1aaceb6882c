// Package reminder mails donors about food log items that expire tomorrow.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/mailing"
	"food-donation-tracker/pkg/expiry"
	"food-donation-tracker/pkg/food"
	"food-donation-tracker/pkg/user"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

type (
	// Result summarises one reminder run.
	Result struct {
		Date    time.Time
		Items   int
		Sent    int
		Skipped int
	}

	ExpiryReminder struct {
		foodRepository food.FoodRepository
		userRepository user.UserRepository
		log            logger.Logger
		sendMail       func(to, subject, body string) error
		loc            *time.Location
		now            func() time.Time
	}
)

func NewExpiryReminder(foodRepository food.FoodRepository, userRepository user.UserRepository, log logger.Logger) *ExpiryReminder {
	return &ExpiryReminder{
		foodRepository: foodRepository,
		userRepository: userRepository,
		log:            log,
		sendMail:       mailing.SendMail,
		loc:            utils.GetLocation(),
		now:            time.Now,
	}
}

// Run sends one mail per owner of items whose expiry date is tomorrow in the
// configured time zone. A failed mail is counted as skipped and does not stop
// the run.
func (r *ExpiryReminder) Run(ctx context.Context) (Result, error) {
	tomorrow := expiry.Today(r.now(), r.loc).AddDate(0, 0, 1)
	result := Result{Date: tomorrow}

	items, err := r.foodRepository.GetFoodItemsExpiringOn(ctx, tomorrow)
	if err != nil {
		return result, fmt.Errorf("failed to load expiring items: %w", err)
	}
	result.Items = len(items)

	owners, byOwner := groupByOwner(items)
	for _, owner := range owners {
		if err := r.notify(ctx, owner, tomorrow, byOwner[owner]); err != nil {
			if errors.Is(err, mailing.ErrMailDisabled) {
				r.log.Debugf("mail disabled, skipping expiry reminder for %s", owner)
			} else {
				r.log.Warnf("expiry reminder for %s: %v", owner, err)
			}
			result.Skipped++
			continue
		}
		result.Sent++
	}

	r.log.WithFields(map[string]interface{}{
		"date":    tomorrow.Format(expiry.DateLayout),
		"items":   result.Items,
		"sent":    result.Sent,
		"skipped": result.Skipped,
	}).Infof("expiry reminders processed")

	return result, nil
}

func (r *ExpiryReminder) notify(ctx context.Context, owner uuid.UUID, date time.Time, items []*entities.FoodItem) error {
	donor, err := r.userRepository.GetUserByID(ctx, owner.String())
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, fmt.Sprintf("%s (%s %s)", item.Name, item.Quantity.String(), item.Unit))
	}

	body, err := mailing.RenderExpiryReminder(mailing.ExpiryReminderMail{
		Username: donor.Username,
		Date:     date.Format(expiry.DateLayout),
		Items:    names,
		AppURL:   utils.GetConfig("APP_URL"),
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	subject := fmt.Sprintf("%d item(s) in your food log expire tomorrow", len(items))
	return r.sendMail(donor.Email, subject, body)
}

func groupByOwner(items []*entities.FoodItem) ([]uuid.UUID, map[uuid.UUID][]*entities.FoodItem) {
	var owners []uuid.UUID
	byOwner := make(map[uuid.UUID][]*entities.FoodItem)
	for _, item := range items {
		if _, ok := byOwner[item.UserID]; !ok {
			owners = append(owners, item.UserID)
		}
		byOwner[item.UserID] = append(byOwner[item.UserID], item)
	}
	return owners, byOwner
}

// Schedule runs the reminder on a six-field cron spec (seconds first).
// The caller owns the returned scheduler and must Stop it.
func Schedule(spec string, r *ExpiryReminder) (*cron.Cron, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	c := cron.NewWithLocation(r.loc)
	c.Schedule(schedule, cron.FuncJob(func() {
		if _, err := r.Run(context.Background()); err != nil {
			r.log.Errorf("expiry reminder run failed: %v", err)
		}
	}))
	c.Start()
	return c, nil
}
