package food

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"food-donation-tracker/domain"
	"food-donation-tracker/entities"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/expiry"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) UploadFile(ctx context.Context, filename string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	args := m.Called(ctx, filename, file, folder)
	return args.String(0), args.Error(1)
}

func (m *mockS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func (m *mockS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.example.com/"
	if len(link) <= len(prefix) {
		return ""
	}
	return link[len(prefix):]
}

func (m *mockS3) DeleteFile(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

// pgFoodRepository rejects malformed ids the way a uuid column does.
type pgFoodRepository struct {
	FoodRepository
}

func (r pgFoodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid input syntax for type uuid: %q", id)
	}
	return r.FoodRepository.GetFoodItemByID(ctx, id)
}

type FoodServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    FoodRepository
	s3      *mockS3
	service *foodService
	userID  string
	now     time.Time
}

func (suite *FoodServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = NewMemoryFoodRepository()
	suite.s3 = new(mockS3)
	suite.userID = uuid.NewString()
	// 00:30 on the 15th in UTC+7, still the 14th in UTC.
	suite.now = time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

	svc := NewFoodService(suite.repo, suite.s3, logger.NewNopLogger()).(*foodService)
	svc.loc = time.FixedZone("WIB", 7*60*60)
	svc.now = func() time.Time { return suite.now }
	suite.service = svc
}

func (suite *FoodServiceTestSuite) add(name, category, expiryDate string) *domain.FoodItemResponse {
	item, err := suite.service.AddFoodItem(suite.ctx, domain.AddFoodItemRequest{
		Name:       name,
		Category:   category,
		Quantity:   "2",
		Unit:       "items",
		ExpiryDate: expiryDate,
	}, suite.userID)
	suite.Require().NoError(err)
	return item
}

func itemNames(items []*domain.FoodItemResponse) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func (suite *FoodServiceTestSuite) TestAddFoodItemClassifiesAgainstLocalToday() {
	item := suite.add("Milk", "dairy", "2025-03-16")

	suite.Equal("Dairy", item.CategoryName)
	suite.True(decimal.NewFromInt(2).Equal(item.Quantity))
	suite.Equal(expiry.Classification{
		DaysRemaining: 1,
		Bucket:        expiry.ExpiresTomorrow,
		Label:         "Expires tomorrow",
		Tone:          "danger",
	}, item.Expiry)
}

func (suite *FoodServiceTestSuite) TestAddFoodItemFieldErrors() {
	_, err := suite.service.AddFoodItem(suite.ctx, domain.AddFoodItemRequest{
		Category:   "snacks",
		Quantity:   "0",
		Unit:       "items",
		ExpiryDate: "15/03/2025",
	}, suite.userID)

	var fieldErrs domain.FieldErrors
	suite.Require().True(errors.As(err, &fieldErrs))
	suite.Equal("Name is required", fieldErrs["name"])
	suite.Equal("Quantity must be a positive number", fieldErrs["quantity"])
	suite.Equal("Expiry date must be a valid date (YYYY-MM-DD)", fieldErrs["expiry_date"])
	suite.Contains(fieldErrs["category"], "Category must be one of")
	suite.NotContains(fieldErrs, "unit")
}

func (suite *FoodServiceTestSuite) TestAddFoodItemBlankFields() {
	_, err := suite.service.AddFoodItem(suite.ctx, domain.AddFoodItemRequest{
		Name:       " \t ",
		Category:   "dairy",
		Quantity:   "   ",
		Unit:       "items",
		ExpiryDate: "2025-03-16",
	}, suite.userID)

	var fieldErrs domain.FieldErrors
	suite.Require().True(errors.As(err, &fieldErrs))
	suite.Equal(domain.FieldErrors{
		"name":     "Name is required",
		"quantity": "Quantity is required",
	}, fieldErrs)

	items, err := suite.repo.GetUserFoodItems(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *FoodServiceTestSuite) TestGetFoodItemsFilterAndOrder() {
	suite.add("Sourdough Loaf", "bakery", "2025-03-17")
	suite.add("Greek Yogurt", "dairy", "2025-03-20")
	suite.add("Old Bread Rolls", "bakery", "2025-03-12")

	list, err := suite.service.GetFoodItems(suite.ctx, domain.ListFoodItemsRequest{}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal([]string{"Old Bread Rolls", "Sourdough Loaf", "Greek Yogurt"}, itemNames(list.Items))

	list, err = suite.service.GetFoodItems(suite.ctx, domain.ListFoodItemsRequest{Category: "bakery", Query: "LOAF"}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal([]string{"Sourdough Loaf"}, itemNames(list.Items))
	suite.Equal(expiry.ExpiresSoon, list.Items[0].Expiry.Bucket)
	suite.Equal("Expires in 2 days", list.Items[0].Expiry.Label)

	list, err = suite.service.GetFoodItems(suite.ctx, domain.ListFoodItemsRequest{Query: "bakery"}, suite.userID)
	suite.Require().NoError(err)
	suite.Len(list.Items, 2)

	_, err = suite.service.GetFoodItems(suite.ctx, domain.ListFoodItemsRequest{Category: "snacks"}, suite.userID)
	suite.ErrorIs(err, domain.ErrInvalidFoodCategory)
}

func (suite *FoodServiceTestSuite) TestExpiryOverview() {
	suite.add("Old Bread Rolls", "bakery", "2025-03-12")
	suite.add("Salad", "produce", "2025-03-15")
	suite.add("Milk", "dairy", "2025-03-16")
	suite.add("Sourdough Loaf", "bakery", "2025-03-18")
	suite.add("Beans", "canned", "2025-09-01")

	overview, err := suite.service.GetExpiryOverview(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(5, overview.TotalItems)
	suite.Equal(2, overview.Expired)
	suite.Equal(1, overview.ExpiresTomorrow)
	suite.Equal(1, overview.ExpiresSoon)
	suite.Equal(1, overview.Normal)
	suite.Equal([]string{"Salad", "Milk", "Sourdough Loaf"}, itemNames(overview.ExpiringItems))
}

func (suite *FoodServiceTestSuite) TestOwnership() {
	item := suite.add("Milk", "dairy", "2025-03-16")

	_, err := suite.service.GetFoodItemByID(suite.ctx, item.ID, uuid.NewString())
	suite.ErrorIs(err, domain.ErrUnauthorizedAccess)

	_, err = suite.service.GetFoodItemByID(suite.ctx, uuid.NewString(), suite.userID)
	suite.ErrorIs(err, domain.ErrFoodItemNotFound)

	suite.ErrorIs(suite.service.DeleteFoodItem(suite.ctx, item.ID, uuid.NewString()), domain.ErrUnauthorizedAccess)
	suite.Require().NoError(suite.service.DeleteFoodItem(suite.ctx, item.ID, suite.userID))
	suite.ErrorIs(suite.service.DeleteFoodItem(suite.ctx, item.ID, suite.userID), domain.ErrFoodItemNotFound)
}

func (suite *FoodServiceTestSuite) TestMalformedIDIsNotFound() {
	suite.service.foodRepository = pgFoodRepository{suite.repo}

	_, err := suite.service.GetFoodItemByID(suite.ctx, "abc", suite.userID)
	suite.ErrorIs(err, domain.ErrFoodItemNotFound)
	suite.ErrorIs(suite.service.DeleteFoodItem(suite.ctx, "not-a-uuid", suite.userID), domain.ErrFoodItemNotFound)
}

func (suite *FoodServiceTestSuite) TestUploadFoodImageReplacesPrevious() {
	item := suite.add("Milk", "dairy", "2025-03-16")
	file := &multipart.FileHeader{Filename: "milk.png"}

	suite.s3.On("UploadFile", mock.Anything, mock.Anything, file, imageFolder).Return("food-items/first.png", nil).Once()
	resp, err := suite.service.UploadFoodImage(suite.ctx, domain.UploadFoodImageRequest{FoodItemID: item.ID, Image: file}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal("https://bucket.example.com/food-items/first.png", resp.ImageURL)

	suite.s3.On("UploadFile", mock.Anything, mock.Anything, file, imageFolder).Return("food-items/second.png", nil).Once()
	suite.s3.On("DeleteFile", mock.Anything, "food-items/first.png").Return(nil).Once()
	resp, err = suite.service.UploadFoodImage(suite.ctx, domain.UploadFoodImageRequest{FoodItemID: item.ID, Image: file}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal("https://bucket.example.com/food-items/second.png", resp.ImageURL)

	stored, err := suite.repo.GetFoodItemByID(suite.ctx, item.ID)
	suite.Require().NoError(err)
	suite.Equal(resp.ImageURL, stored.ImageURL)
	suite.s3.AssertExpectations(suite.T())
}

func (suite *FoodServiceTestSuite) TestUploadFoodImageStorageDisabled() {
	item := suite.add("Milk", "dairy", "2025-03-16")
	file := &multipart.FileHeader{Filename: "milk.png"}

	suite.s3.On("UploadFile", mock.Anything, mock.Anything, file, imageFolder).Return("", storage.ErrStorageDisabled)
	_, err := suite.service.UploadFoodImage(suite.ctx, domain.UploadFoodImageRequest{FoodItemID: item.ID, Image: file}, suite.userID)
	suite.ErrorIs(err, storage.ErrStorageDisabled)
}

func (suite *FoodServiceTestSuite) TestDeleteRemovesImage() {
	item := &entities.FoodItem{
		UserID:     uuid.MustParse(suite.userID),
		Name:       "Cheese",
		Category:   "dairy",
		Quantity:   decimal.NewFromInt(1),
		Unit:       "items",
		ExpiryDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		ImageURL:   "https://bucket.example.com/food-items/cheese.png",
	}
	suite.Require().NoError(suite.repo.AddFoodItem(suite.ctx, item))

	suite.s3.On("DeleteFile", mock.Anything, "food-items/cheese.png").Return(nil).Once()
	suite.Require().NoError(suite.service.DeleteFoodItem(suite.ctx, item.ID.String(), suite.userID))
	suite.s3.AssertExpectations(suite.T())
}

func (suite *FoodServiceTestSuite) TestListCategories() {
	categories := suite.service.ListCategories()
	suite.Len(categories, 7)
	suite.Equal(domain.FoodCategory{ID: "prepared", Name: "Prepared Meals", TypicalExpiry: "1-2 days"}, categories[3])
}

func TestFoodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FoodServiceTestSuite))
}
