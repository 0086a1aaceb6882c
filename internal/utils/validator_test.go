package utils

import (
	"errors"
	"testing"

	"food-donation-tracker/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_FoodItemForm(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, domain.AddFoodItemRequest{Unit: "kg"})
	require.Error(t, err)

	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.FieldErrors{
		"name":        "Name is required",
		"category":    "Category is required",
		"quantity":    "Quantity is required",
		"expiry_date": "Expiry date is required",
	}, fe)
}

func TestValidateStruct_BlankCountsAsMissing(t *testing.T) {
	v := NewValidator()
	err := ValidateStruct(v, domain.AddFoodItemRequest{
		Name:       "   ",
		Category:   "produce",
		Quantity:   " \t ",
		Unit:       "kg",
		ExpiryDate: "2025-03-20",
	})

	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.FieldErrors{
		"name":     "Name is required",
		"quantity": "Quantity is required",
	}, fe)
}

func TestValidateStruct_QuantityMustBePositive(t *testing.T) {
	v := NewValidator()
	base := domain.AddFoodItemRequest{
		Name:       "Apples",
		Category:   "produce",
		Unit:       "kg",
		ExpiryDate: "2025-03-20",
	}

	for _, q := range []string{"0", "-2", "abc", "1/2"} {
		req := base
		req.Quantity = q
		err := ValidateStruct(v, req)
		var fe domain.FieldErrors
		require.True(t, errors.As(err, &fe), "quantity %q", q)
		assert.Equal(t, "Quantity must be a positive number", fe["quantity"])
		assert.Len(t, fe, 1)
	}

	ok := base
	ok.Quantity = "2.5"
	assert.NoError(t, ValidateStruct(v, ok))
}

func TestValidateStruct_DateAndEnum(t *testing.T) {
	v := NewValidator()
	req := domain.AddFoodItemRequest{
		Name:       "Milk",
		Category:   "snacks",
		Quantity:   "2",
		Unit:       "gallons",
		ExpiryDate: "2025-02-30",
	}
	err := ValidateStruct(v, req)
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Expiry date must be a valid date (YYYY-MM-DD)", fe["expiry_date"])
	assert.Contains(t, fe["category"], "Category must be one of: produce, dairy")
	assert.Contains(t, fe["unit"], "Unit must be one of")
}

func TestValidateStruct_RegisterForm(t *testing.T) {
	v := NewValidator()
	err := ValidateStruct(v, domain.RegisterRequest{Username: "jo", Email: "nope", Password: "short"})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Username must be at least 3 characters", fe["username"])
	assert.Equal(t, "Email must be a valid email address", fe["email"])
	assert.Equal(t, "Password must be at least 8 characters", fe["password"])
}

func TestParsePositiveDecimal(t *testing.T) {
	d, ok := ParsePositiveDecimal(" 12.50 ")
	require.True(t, ok)
	assert.Equal(t, "12.5", d.String())

	_, ok = ParsePositiveDecimal("")
	assert.False(t, ok)
}

func TestHumanizeField(t *testing.T) {
	assert.Equal(t, "Expiry date", HumanizeField("expiry_date"))
	assert.Equal(t, "Name", HumanizeField("name"))
	assert.Equal(t, "", HumanizeField(""))
}
