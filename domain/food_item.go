package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"food-donation-tracker/pkg/expiry"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessGetFoodCategories = "food categories retrieved successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetExpiryOverview = "expiry overview retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedGetExpiryOverview = "failed to retrieve expiry overview"

	ErrFoodItemNotFound    = errors.New("food item not found")
	ErrInvalidExpiryDate   = errors.New("invalid expiry date")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidFoodCategory = errors.New("invalid food category")
	ErrUnauthorizedAccess  = errors.New("unauthorized access to food item")
)

type FoodCategory struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TypicalExpiry string `json:"typical_expiry"`
}

var foodCategories = []FoodCategory{
	{ID: "produce", Name: "Produce", TypicalExpiry: "3-5 days"},
	{ID: "dairy", Name: "Dairy", TypicalExpiry: "5-7 days"},
	{ID: "bakery", Name: "Bakery", TypicalExpiry: "2-3 days"},
	{ID: "prepared", Name: "Prepared Meals", TypicalExpiry: "1-2 days"},
	{ID: "frozen", Name: "Frozen", TypicalExpiry: "30+ days"},
	{ID: "canned", Name: "Canned/Dry Goods", TypicalExpiry: "6+ months"},
	{ID: "beverages", Name: "Beverages", TypicalExpiry: "Varies"},
}

// FoodUnits are the units a food log entry may use.
var FoodUnits = []string{"kg", "liters", "servings", "items", "packages", "loaves"}

func FoodCategories() []FoodCategory {
	out := make([]FoodCategory, len(foodCategories))
	copy(out, foodCategories)
	return out
}

func LookupFoodCategory(id string) (FoodCategory, bool) {
	for _, c := range foodCategories {
		if c.ID == id {
			return c, true
		}
	}
	return FoodCategory{}, false
}

type (
	AddFoodItemRequest struct {
		Name       string `json:"name" validate:"notblank"`
		Category   string `json:"category" validate:"required,oneof=produce dairy bakery prepared frozen canned beverages"`
		Quantity   string `json:"quantity" validate:"notblank,positive_decimal"`
		Unit       string `json:"unit" validate:"required,oneof=kg liters servings items packages loaves"`
		ExpiryDate string `json:"expiry_date" validate:"required,calendar_date"`
		Notes      string `json:"notes" validate:"omitempty"`
	}

	ListFoodItemsRequest struct {
		Query    string
		Category string
		Page     int
		Limit    int
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID           string                `json:"id"`
		Name         string                `json:"name"`
		Category     string                `json:"category"`
		CategoryName string                `json:"category_name"`
		Quantity     decimal.Decimal       `json:"quantity"`
		Unit         string                `json:"unit"`
		ExpiryDate   time.Time             `json:"expiry_date"`
		Notes        string                `json:"notes,omitempty"`
		ImageURL     string                `json:"image_url,omitempty"`
		CreatedAt    time.Time             `json:"created_at"`
		Expiry       expiry.Classification `json:"expiry"`
	}

	FoodItemList struct {
		Items      []*FoodItemResponse `json:"items"`
		Pagination Pagination          `json:"pagination"`
	}

	ExpiryOverview struct {
		TotalItems      int                 `json:"total_items"`
		Expired         int                 `json:"expired"`
		ExpiresTomorrow int                 `json:"expires_tomorrow"`
		ExpiresSoon     int                 `json:"expires_soon"`
		Normal          int                 `json:"normal"`
		ExpiringItems   []*FoodItemResponse `json:"expiring_items"`
	}
)

func (f *FoodItemResponse) SearchFields() []string {
	return []string{f.Name, f.Notes, f.CategoryName}
}

func (f *FoodItemResponse) Categories() []string {
	return []string{f.Category}
}
