package food

import (
	"context"
	"errors"
	"strings"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/pkg/expiry"
	"food-donation-tracker/pkg/record"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	WasteService interface {
		LogWaste(ctx context.Context, req domain.LogWasteRequest, userID string) (*domain.WasteLog, error)
		GetWasteLogs(ctx context.Context, req domain.ListWasteLogsRequest, userID string) (*domain.WasteLogList, error)
		DeleteWasteLog(ctx context.Context, id string, userID string) error
		GetWasteSummary(ctx context.Context, period string, userID string) (*domain.WasteSummary, error)
		ListReasons() []domain.WasteReasonInfo
	}

	wasteService struct {
		wasteRepository WasteRepository
		foodRepository  FoodRepository
		validate        *validator.Validate
		log             logger.Logger
		loc             *time.Location
		now             func() time.Time
	}
)

func NewWasteService(wasteRepository WasteRepository, foodRepository FoodRepository, log logger.Logger) WasteService {
	return &wasteService{
		wasteRepository: wasteRepository,
		foodRepository:  foodRepository,
		validate:        utils.NewValidator(),
		log:             log,
		loc:             utils.GetLocation(),
		now:             time.Now,
	}
}

func (s *wasteService) LogWaste(ctx context.Context, req domain.LogWasteRequest, userID string) (*domain.WasteLog, error) {
	var foodItemID *uuid.UUID
	if id, err := uuid.Parse(strings.TrimSpace(req.FoodItemID)); err == nil {
		item, err := s.ownedFoodItem(ctx, id.String(), userID)
		if err != nil {
			return nil, err
		}
		foodItemID = &item.ID
		req = withFoodItemDefaults(req, item)
	}

	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	quantity, _ := utils.ParsePositiveDecimal(req.Quantity)
	wasteDate, err := expiry.ParseDate(strings.TrimSpace(req.WasteDate))
	if err != nil {
		return nil, domain.FieldErrors{"waste_date": "Waste date must be a valid date (YYYY-MM-DD)"}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	wasteLog := &entities.WasteLog{
		ID:         uuid.New(),
		UserID:     userUUID,
		FoodItemID: foodItemID,
		FoodName:   strings.TrimSpace(req.FoodName),
		Category:   req.Category,
		Quantity:   quantity,
		Unit:       req.Unit,
		WasteDate:  wasteDate,
		Reason:     req.Reason,
		Notes:      req.Notes,
	}
	if err := s.wasteRepository.CreateWasteLog(ctx, wasteLog); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"waste_log_id": wasteLog.ID.String(),
		"reason":       wasteLog.Reason,
	}).Infof("waste logged")

	return WasteToDomain(wasteLog), nil
}

func (s *wasteService) GetWasteLogs(ctx context.Context, req domain.ListWasteLogsRequest, userID string) (*domain.WasteLogList, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason != "" && reason != record.CategoryAll {
		if _, err := domain.ParseWasteReason(reason); err != nil {
			return nil, err
		}
	}
	category := strings.TrimSpace(req.Category)
	if category != "" && category != record.CategoryAll {
		if _, ok := domain.LookupFoodCategory(category); !ok {
			return nil, domain.ErrInvalidFoodCategory
		}
	}

	logs, err := s.userWasteLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := record.Filter(logs, req.Query, record.Constraints{Category: reason})
	filtered = record.Filter(filtered, "", record.Constraints{Category: category})
	page, limit := record.NormalizePage(req.Page, req.Limit)
	total := int64(len(filtered))

	return &domain.WasteLogList{
		WasteLogs: record.Paginate(filtered, page, limit),
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: record.TotalPages(total, limit),
		},
	}, nil
}

func (s *wasteService) DeleteWasteLog(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrWasteLogNotFound
	}

	wasteLog, err := s.wasteRepository.GetWasteLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWasteLogNotFound
		}
		return err
	}
	if wasteLog.UserID.String() != userID {
		return domain.ErrUnauthorizedWasteLogAccess
	}

	if err := s.wasteRepository.DeleteWasteLog(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWasteLogNotFound
		}
		return err
	}
	return nil
}

func (s *wasteService) GetWasteSummary(ctx context.Context, period string, userID string) (*domain.WasteSummary, error) {
	logs, err := s.userWasteLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := domain.ParseAnalyticsPeriod(period)
	since := p.Since(expiry.Today(s.now(), s.loc))

	summary := &domain.WasteSummary{
		Period:         p,
		Since:          since,
		ByReason:       make(map[string]int, len(domain.WasteReasons())),
		QuantityByUnit: map[string]decimal.Decimal{},
	}
	for _, r := range domain.WasteReasons() {
		summary.ByReason[string(r)] = 0
	}

	for _, l := range logs {
		if l.WasteDate.Before(since) {
			continue
		}
		summary.TotalEntries++
		summary.ByReason[string(l.Reason)]++
		summary.QuantityByUnit[l.Unit] = summary.QuantityByUnit[l.Unit].Add(l.Quantity)
	}
	return summary, nil
}

func (s *wasteService) ListReasons() []domain.WasteReasonInfo {
	reasons := domain.WasteReasons()
	out := make([]domain.WasteReasonInfo, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, r.Info())
	}
	return out
}

func (s *wasteService) userWasteLogs(ctx context.Context, userID string) ([]*domain.WasteLog, error) {
	logs, err := s.wasteRepository.GetUserWasteLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.WasteLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, WasteToDomain(l))
	}
	return out, nil
}

func (s *wasteService) ownedFoodItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if item.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

func withFoodItemDefaults(req domain.LogWasteRequest, item *entities.FoodItem) domain.LogWasteRequest {
	if strings.TrimSpace(req.FoodName) == "" {
		req.FoodName = item.Name
	}
	if req.Category == "" {
		req.Category = item.Category
	}
	if strings.TrimSpace(req.Quantity) == "" {
		req.Quantity = item.Quantity.String()
	}
	if req.Unit == "" {
		req.Unit = item.Unit
	}
	return req
}

func WasteToDomain(l *entities.WasteLog) *domain.WasteLog {
	reason := domain.WasteReason(l.Reason)
	out := &domain.WasteLog{
		ID:          l.ID.String(),
		FoodName:    l.FoodName,
		Category:    l.Category,
		Quantity:    l.Quantity,
		Unit:        l.Unit,
		WasteDate:   l.WasteDate,
		Reason:      reason,
		ReasonLabel: reason.Label(),
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
	}
	if l.FoodItemID != nil {
		out.FoodItemID = l.FoodItemID.String()
	}
	if c, ok := domain.LookupFoodCategory(l.Category); ok {
		out.CategoryName = c.Name
	}
	return out
}
