package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessLogWaste        = "waste logged successfully"
	MessageSuccessGetWasteLogs    = "waste logs retrieved successfully"
	MessageSuccessGetWasteReasons = "waste reasons retrieved successfully"
	MessageSuccessGetWasteSummary = "waste summary retrieved successfully"
	MessageSuccessDeleteWasteLog  = "waste log deleted successfully"

	MessageFailedLogWaste        = "failed to log waste"
	MessageFailedGetWasteLogs    = "failed to retrieve waste logs"
	MessageFailedGetWasteSummary = "failed to retrieve waste summary"
	MessageFailedDeleteWasteLog  = "failed to delete waste log"

	ErrWasteLogNotFound           = errors.New("waste log not found")
	ErrUnauthorizedWasteLogAccess = errors.New("unauthorized access to waste log")
	ErrInvalidWasteReason         = errors.New("invalid waste reason")
)

type WasteReason string

const (
	WasteReasonExpired WasteReason = "expired"
	WasteReasonSpoiled WasteReason = "spoiled"
	WasteReasonDamaged WasteReason = "damaged"
	WasteReasonExcess  WasteReason = "excess"
	WasteReasonOther   WasteReason = "other"
)

type WasteReasonInfo struct {
	ID   WasteReason `json:"id"`
	Name string      `json:"name"`
}

func WasteReasons() []WasteReason {
	return []WasteReason{
		WasteReasonExpired,
		WasteReasonSpoiled,
		WasteReasonDamaged,
		WasteReasonExcess,
		WasteReasonOther,
	}
}

func ParseWasteReason(key string) (WasteReason, error) {
	for _, r := range WasteReasons() {
		if string(r) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWasteReason, key)
}

func (r WasteReason) Label() string {
	switch r {
	case WasteReasonExpired:
		return "Expired"
	case WasteReasonSpoiled:
		return "Spoiled"
	case WasteReasonDamaged:
		return "Damaged"
	case WasteReasonExcess:
		return "Excess"
	case WasteReasonOther:
		return "Other"
	}
	return ""
}

func (r WasteReason) Info() WasteReasonInfo {
	return WasteReasonInfo{ID: r, Name: r.Label()}
}

type (
	// LogWasteRequest records discarded food. With FoodItemID set, empty
	// name, category, quantity and unit are taken from that food log entry.
	LogWasteRequest struct {
		FoodItemID string `json:"food_item_id" validate:"omitempty,uuid"`
		FoodName   string `json:"food_name" validate:"notblank"`
		Category   string `json:"category" validate:"omitempty,oneof=produce dairy bakery prepared frozen canned beverages"`
		Quantity   string `json:"quantity" validate:"notblank,positive_decimal"`
		Unit       string `json:"unit" validate:"required,oneof=kg liters servings items packages loaves"`
		WasteDate  string `json:"waste_date" validate:"required,calendar_date"`
		Reason     string `json:"reason" validate:"required,oneof=expired spoiled damaged excess other"`
		Notes      string `json:"notes" validate:"omitempty"`
	}

	ListWasteLogsRequest struct {
		Query    string
		Reason   string
		Category string
		Page     int
		Limit    int
	}

	WasteLog struct {
		ID           string          `json:"id"`
		FoodItemID   string          `json:"food_item_id,omitempty"`
		FoodName     string          `json:"food_name"`
		Category     string          `json:"category,omitempty"`
		CategoryName string          `json:"category_name,omitempty"`
		Quantity     decimal.Decimal `json:"quantity"`
		Unit         string          `json:"unit"`
		WasteDate    time.Time       `json:"waste_date"`
		Reason       WasteReason     `json:"reason"`
		ReasonLabel  string          `json:"reason_label"`
		Notes        string          `json:"notes,omitempty"`
		CreatedAt    time.Time       `json:"created_at"`
	}

	WasteLogList struct {
		WasteLogs  []*WasteLog `json:"waste_logs"`
		Pagination Pagination  `json:"pagination"`
	}

	// WasteSummary totals waste logged since the start of a period.
	// Quantities are summed per unit.
	WasteSummary struct {
		Period         AnalyticsPeriod            `json:"period"`
		Since          time.Time                  `json:"since"`
		TotalEntries   int                        `json:"total_entries"`
		ByReason       map[string]int             `json:"by_reason"`
		QuantityByUnit map[string]decimal.Decimal `json:"quantity_by_unit"`
	}
)

func (w *WasteLog) SearchFields() []string {
	return []string{w.FoodName, w.Notes, w.CategoryName}
}

// Categories holds the reason and the food category. The two key sets
// never overlap, so one constraint can match either.
func (w *WasteLog) Categories() []string {
	return []string{string(w.Reason), w.Category}
}
