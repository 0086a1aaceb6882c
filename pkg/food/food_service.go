package food

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
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/expiry"
	"food-donation-tracker/pkg/record"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "food-items"

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (*domain.FoodItemResponse, error)
		GetFoodItems(ctx context.Context, req domain.ListFoodItemsRequest, userID string) (*domain.FoodItemList, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (*domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (*domain.FoodItemResponse, error)
		GetExpiryOverview(ctx context.Context, userID string) (*domain.ExpiryOverview, error)
		ListCategories() []domain.FoodCategory
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		validate       *validator.Validate
		log            logger.Logger
		loc            *time.Location
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, log logger.Logger) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		validate:       utils.NewValidator(),
		log:            log,
		loc:            utils.GetLocation(),
		now:            time.Now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (*domain.FoodItemResponse, error) {
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	quantity, _ := utils.ParsePositiveDecimal(req.Quantity)
	expiryDate, err := expiry.ParseDate(strings.TrimSpace(req.ExpiryDate))
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	foodItem := &entities.FoodItem{
		ID:         uuid.New(),
		UserID:     userUUID,
		Name:       strings.TrimSpace(req.Name),
		Category:   req.Category,
		Quantity:   quantity,
		Unit:       req.Unit,
		ExpiryDate: expiryDate,
		Notes:      req.Notes,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return nil, err
	}

	return s.toResponse(foodItem, s.today()), nil
}

func (s *foodService) GetFoodItems(ctx context.Context, req domain.ListFoodItemsRequest, userID string) (*domain.FoodItemList, error) {
	category := strings.TrimSpace(req.Category)
	if category != "" && category != record.CategoryAll {
		if _, ok := domain.LookupFoodCategory(category); !ok {
			return nil, domain.ErrInvalidFoodCategory
		}
	}

	items, err := s.userItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := record.Filter(items, req.Query, record.Constraints{Category: category})
	page, limit := record.NormalizePage(req.Page, req.Limit)
	total := int64(len(filtered))

	return &domain.FoodItemList{
		Items: record.Paginate(filtered, page, limit),
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: record.TotalPages(total, limit),
		},
	}, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (*domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(foodItem, s.today()), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.ImageURL != "" {
		s.deleteImage(ctx, foodItem.ImageURL)
	}

	if err := s.foodRepository.DeleteFoodItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}
	return nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (*domain.FoodItemResponse, error) {
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	foodItem, err := s.ownedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("food-item-%s-%d", foodItem.ID.String(), s.now().Unix())
	objectKey, err := s.s3.UploadFile(ctx, fileName, req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		return nil, err
	}

	previous := foodItem.ImageURL
	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return nil, err
	}

	if previous != "" && previous != foodItem.ImageURL {
		s.deleteImage(ctx, previous)
	}

	return s.toResponse(foodItem, s.today()), nil
}

func (s *foodService) GetExpiryOverview(ctx context.Context, userID string) (*domain.ExpiryOverview, error) {
	items, err := s.userItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &domain.ExpiryOverview{
		TotalItems:    len(items),
		ExpiringItems: []*domain.FoodItemResponse{},
	}
	for _, item := range items {
		switch item.Expiry.Bucket {
		case expiry.Expired:
			overview.Expired++
		case expiry.ExpiresTomorrow:
			overview.ExpiresTomorrow++
		case expiry.ExpiresSoon:
			overview.ExpiresSoon++
		default:
			overview.Normal++
		}

		if days := item.Expiry.DaysRemaining; days >= 0 && days <= expiry.SoonThresholdDays {
			overview.ExpiringItems = append(overview.ExpiringItems, item)
		}
	}

	return overview, nil
}

func (s *foodService) ListCategories() []domain.FoodCategory {
	return domain.FoodCategories()
}

func (s *foodService) userItems(ctx context.Context, userID string) ([]*domain.FoodItemResponse, error) {
	foodItems, err := s.foodRepository.GetUserFoodItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	out := make([]*domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		out = append(out, s.toResponse(item, today))
	}
	return out, nil
}

func (s *foodService) ownedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFoodItemNotFound
	}

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

func (s *foodService) deleteImage(ctx context.Context, link string) {
	objectKey := s.s3.GetObjectKeyFromLink(link)
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil && !errors.Is(err, storage.ErrStorageDisabled) {
		s.log.Warnf("delete image %s: %v", objectKey, err)
	}
}

func (s *foodService) today() time.Time {
	return expiry.Today(s.now(), s.loc)
}

func (s *foodService) toResponse(item *entities.FoodItem, today time.Time) *domain.FoodItemResponse {
	categoryName := item.Category
	if c, ok := domain.LookupFoodCategory(item.Category); ok {
		categoryName = c.Name
	}

	return &domain.FoodItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Category:     item.Category,
		CategoryName: categoryName,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		ExpiryDate:   item.ExpiryDate,
		Notes:        item.Notes,
		ImageURL:     item.ImageURL,
		CreatedAt:    item.CreatedAt,
		Expiry:       expiry.Classify(item.ExpiryDate, today),
	}
}
