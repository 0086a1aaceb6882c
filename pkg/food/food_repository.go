package food

import (
	"context"
	"sort"
	"sync"
	"time"

	"food-donation-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		GetUserFoodItems(ctx context.Context, userID string) ([]*entities.FoodItem, error)
		GetFoodItemsExpiringOn(ctx context.Context, date time.Time) ([]*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
	}

	foodRepository struct {
		db *gorm.DB
	}

	memoryFoodRepository struct {
		mu    sync.RWMutex
		items []*entities.FoodItem
		now   func() time.Time
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) GetUserFoodItems(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date asc").
		Order("created_at desc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) GetFoodItemsExpiringOn(ctx context.Context, date time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("expiry_date = ?", date.Format(time.DateOnly)).
		Order("user_id").
		Order("name").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NewMemoryFoodRepository orders items the way the gorm listing does:
// soonest expiry first, newest first within a day.
func NewMemoryFoodRepository() FoodRepository {
	return &memoryFoodRepository{now: time.Now}
}

func (r *memoryFoodRepository) AddFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if foodItem.ID == uuid.Nil {
		foodItem.ID = uuid.New()
	}
	if r.indexOf(foodItem.ID.String()) >= 0 {
		return gorm.ErrDuplicatedKey
	}
	if foodItem.CreatedAt.IsZero() {
		foodItem.CreatedAt = r.now()
	}
	foodItem.UpdatedAt = foodItem.CreatedAt

	cp := *foodItem
	r.items = append(r.items, &cp)
	r.sort()
	return nil
}

func (r *memoryFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		cp := *r.items[i]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryFoodRepository) GetUserFoodItems(_ context.Context, userID string) ([]*entities.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.FoodItem{}
	for _, item := range r.items {
		if item.UserID.String() == userID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryFoodRepository) GetFoodItemsExpiringOn(_ context.Context, date time.Time) ([]*entities.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format(time.DateOnly)
	out := []*entities.FoodItem{}
	for _, item := range r.items {
		if item.ExpiryDate.Format(time.DateOnly) == day {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID.String() < out[j].UserID.String()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memoryFoodRepository) UpdateFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(foodItem.ID.String())
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	foodItem.UpdatedAt = r.now()
	cp := *foodItem
	r.items[i] = &cp
	r.sort()
	return nil
}

func (r *memoryFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memoryFoodRepository) indexOf(id string) int {
	for i, item := range r.items {
		if item.ID.String() == id {
			return i
		}
	}
	return -1
}

func (r *memoryFoodRepository) sort() {
	sort.SliceStable(r.items, func(i, j int) bool {
		a, b := r.items[i], r.items[j]
		if !a.ExpiryDate.Equal(b.ExpiryDate) {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
