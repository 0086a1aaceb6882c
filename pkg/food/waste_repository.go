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
	WasteRepository interface {
		CreateWasteLog(ctx context.Context, wasteLog *entities.WasteLog) error
		GetWasteLogByID(ctx context.Context, id string) (*entities.WasteLog, error)
		GetUserWasteLogs(ctx context.Context, userID string) ([]*entities.WasteLog, error)
		DeleteWasteLog(ctx context.Context, id string) error
	}

	wasteRepository struct {
		db *gorm.DB
	}

	memoryWasteRepository struct {
		mu   sync.RWMutex
		logs []*entities.WasteLog
		now  func() time.Time
	}
)

func NewWasteRepository(db *gorm.DB) WasteRepository {
	return &wasteRepository{db: db}
}

func (r *wasteRepository) CreateWasteLog(ctx context.Context, wasteLog *entities.WasteLog) error {
	return r.db.WithContext(ctx).Create(wasteLog).Error
}

func (r *wasteRepository) GetWasteLogByID(ctx context.Context, id string) (*entities.WasteLog, error) {
	var wasteLog entities.WasteLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wasteLog).Error; err != nil {
		return nil, err
	}
	return &wasteLog, nil
}

func (r *wasteRepository) GetUserWasteLogs(ctx context.Context, userID string) ([]*entities.WasteLog, error) {
	var logs []*entities.WasteLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("waste_date desc").
		Order("created_at desc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *wasteRepository) DeleteWasteLog(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.WasteLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NewMemoryWasteRepository keeps waste logs most recent waste date first.
func NewMemoryWasteRepository() WasteRepository {
	return &memoryWasteRepository{now: time.Now}
}

func (r *memoryWasteRepository) CreateWasteLog(_ context.Context, wasteLog *entities.WasteLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wasteLog.ID == uuid.Nil {
		wasteLog.ID = uuid.New()
	}
	for _, existing := range r.logs {
		if existing.ID == wasteLog.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	if wasteLog.CreatedAt.IsZero() {
		wasteLog.CreatedAt = r.now()
	}
	if wasteLog.UpdatedAt.IsZero() {
		wasteLog.UpdatedAt = wasteLog.CreatedAt
	}

	cp := *wasteLog
	r.logs = append(r.logs, &cp)
	sort.SliceStable(r.logs, func(i, j int) bool {
		a, b := r.logs[i], r.logs[j]
		if !a.WasteDate.Equal(b.WasteDate) {
			return a.WasteDate.After(b.WasteDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return nil
}

func (r *memoryWasteRepository) GetWasteLogByID(_ context.Context, id string) (*entities.WasteLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		cp := *r.logs[i]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryWasteRepository) GetUserWasteLogs(_ context.Context, userID string) ([]*entities.WasteLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.WasteLog{}
	for _, l := range r.logs {
		if l.UserID.String() == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryWasteRepository) DeleteWasteLog(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.logs = append(r.logs[:i], r.logs[i+1:]...)
	return nil
}

func (r *memoryWasteRepository) indexOf(id string) int {
	for i, l := range r.logs {
		if l.ID.String() == id {
			return i
		}
	}
	return -1
}
