package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-donation-tracker/cmd/database/seed"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

type AppTestSuite struct {
	suite.Suite
	app   *fiber.App
	token string
}

func (suite *AppTestSuite) SetupTest() {
	repos := NewRepositories(nil)
	_, err := seed.Seed(context.Background(), repos.Organization)
	suite.Require().NoError(err)

	suite.app = Build(AppOptions{
		Repositories: repos,
		JWTService:   jwt.NewJWTServiceWithSecret("test-secret"),
		Storage:      storage.NewAwsS3(),
		Log:          logger.NewNopLogger(),
	})

	res, body := suite.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"username": "maria",
		"email":    "maria@example.com",
		"password": "supersecret",
	})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)

	var auth struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &auth))
	suite.token = auth.Token
}

func (suite *AppTestSuite) do(method, path string, payload any) (*http.Response, envelope) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	res, err := suite.app.Test(req, -1)
	suite.Require().NoError(err)

	var body envelope
	raw, err := io.ReadAll(res.Body)
	suite.Require().NoError(err)
	if len(raw) > 0 {
		suite.Require().NoError(json.Unmarshal(raw, &body), string(raw))
	}
	return res, body
}

func (suite *AppTestSuite) TestPing() {
	res, err := suite.app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	suite.Require().NoError(err)
	suite.Equal(fiber.StatusOK, res.StatusCode)
}

func (suite *AppTestSuite) TestAuthRequired() {
	suite.token = ""
	res, body := suite.do(http.MethodGet, "/api/v1/donations", nil)
	suite.Equal(fiber.StatusUnauthorized, res.StatusCode)
	suite.False(body.Status)

	suite.token = "garbage"
	res, _ = suite.do(http.MethodGet, "/api/v1/users/me", nil)
	suite.Equal(fiber.StatusUnauthorized, res.StatusCode)
}

func (suite *AppTestSuite) TestMe() {
	res, body := suite.do(http.MethodGet, "/api/v1/users/me", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `"username":"maria"`)
}

func (suite *AppTestSuite) TestRegisterValidationAndConflict() {
	res, body := suite.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	})
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal("Username must be at least 3 characters", body.Errors["username"])
	suite.Equal("Email must be a valid email address", body.Errors["email"])
	suite.Equal("Password must be at least 8 characters", body.Errors["password"])

	res, _ = suite.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"username": "maria2",
		"email":    "maria@example.com",
		"password": "supersecret",
	})
	suite.Equal(fiber.StatusConflict, res.StatusCode)
}

func (suite *AppTestSuite) TestDonationLifecycle() {
	orgID := seed.OrganizationID("Food For All").String()

	res, body := suite.do(http.MethodPost, "/api/v1/donations", map[string]string{
		"name":            "Fresh Vegetables",
		"quantity":        "8",
		"unit":            "kg",
		"organization_id": orgID,
		"donation_date":   "2025-03-14",
	})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &created))
	suite.Equal("pending", created.Status)

	res, body = suite.do(http.MethodPatch, "/api/v1/donations/"+created.ID+"/status", map[string]string{"status": "teleported"})
	suite.Equal(fiber.StatusBadRequest, res.StatusCode)
	suite.Contains(body.Error, "invalid donation status")

	res, _ = suite.do(http.MethodPatch, "/api/v1/donations/"+created.ID+"/status", map[string]string{"status": "completed"})
	suite.Equal(fiber.StatusOK, res.StatusCode)

	res, body = suite.do(http.MethodGet, "/api/v1/donations?status=completed&q=food%20for", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), "Fresh Vegetables")

	res, body = suite.do(http.MethodGet, "/api/v1/donations/statistics", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `"completed_donations":1`)

	res, _ = suite.do(http.MethodDelete, "/api/v1/donations/"+created.ID, nil)
	suite.Equal(fiber.StatusOK, res.StatusCode)

	res, _ = suite.do(http.MethodGet, "/api/v1/donations/"+created.ID, nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)
}

func (suite *AppTestSuite) TestDonationFieldErrors() {
	res, body := suite.do(http.MethodPost, "/api/v1/donations", map[string]string{
		"quantity":        "abc",
		"unit":            "kg",
		"organization_id": seed.OrganizationID("Food For All").String(),
		"donation_date":   "2025-03-14",
	})
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal(map[string]string{
		"name":     "Name is required",
		"quantity": "Quantity must be a positive number",
	}, body.Errors)
}

func (suite *AppTestSuite) TestDonationStatuses() {
	res, body := suite.do(http.MethodGet, "/api/v1/donations/statuses", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `{"id":"in_transit","name":"In Transit","color":"blue"}`)
}

func (suite *AppTestSuite) TestFoodItems() {
	res, body := suite.do(http.MethodPost, "/api/v1/food-items", map[string]string{
		"name":        "Greek Yogurt",
		"category":    "dairy",
		"quantity":    "4",
		"unit":        "items",
		"expiry_date": "2099-01-01",
	})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)
	suite.Contains(string(body.Data), `"bucket":"normal"`)

	res, body = suite.do(http.MethodGet, "/api/v1/food-items?category=dairy&q=yogurt", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), "Greek Yogurt")

	res, _ = suite.do(http.MethodGet, "/api/v1/food-items?category=snacks", nil)
	suite.Equal(fiber.StatusBadRequest, res.StatusCode)

	res, body = suite.do(http.MethodGet, "/api/v1/food-items/categories", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), "Canned/Dry Goods")

	res, body = suite.do(http.MethodGet, "/api/v1/food-items/expiry", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `"normal":1`)
}

func (suite *AppTestSuite) TestOrganizations() {
	res, body := suite.do(http.MethodGet, "/api/v1/organizations?max_distance=3&q=proteins", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)

	var orgs []struct {
		Name string `json:"name"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &orgs))
	suite.Require().Len(orgs, 1)
	suite.Equal("Food For All", orgs[0].Name)

	res, body = suite.do(http.MethodGet, "/api/v1/organizations?max_distance=far", nil)
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal("Max distance must be a number", body.Errors["max_distance"])

	res, _ = suite.do(http.MethodGet, "/api/v1/organizations/"+seed.OrganizationID("City Food Bank").String(), nil)
	suite.Equal(fiber.StatusOK, res.StatusCode)
}

func (suite *AppTestSuite) TestDashboard() {
	res, body := suite.do(http.MethodGet, "/api/v1/dashboard", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)

	var dash struct {
		NearbyOrganizations []struct {
			Name string `json:"name"`
		} `json:"nearby_organizations"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &dash))
	suite.Require().Len(dash.NearbyOrganizations, 3)
	suite.Equal("Hope Community Center", dash.NearbyOrganizations[0].Name)
}

func (suite *AppTestSuite) TestBlankAndMalformedInput() {
	res, body := suite.do(http.MethodPost, "/api/v1/donations", map[string]string{
		"name":            "   ",
		"quantity":        " ",
		"unit":            "kg",
		"organization_id": seed.OrganizationID("Food For All").String(),
		"donation_date":   "2025-03-14",
	})
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal(map[string]string{
		"name":     "Name is required",
		"quantity": "Quantity is required",
	}, body.Errors)

	res, _ = suite.do(http.MethodGet, "/api/v1/donations/abc", nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)

	res, _ = suite.do(http.MethodDelete, "/api/v1/food-items/abc", nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)

	res, _ = suite.do(http.MethodGet, "/api/v1/organizations/abc", nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)
}

func (suite *AppTestSuite) TestDonationFeedback() {
	res, body := suite.do(http.MethodPost, "/api/v1/donations", map[string]string{
		"name":            "Sandwich Platters",
		"quantity":        "12",
		"unit":            "servings",
		"organization_id": seed.OrganizationID("Food For All").String(),
		"donation_date":   "2025-03-14",
	})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)

	var created struct {
		ID string `json:"id"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &created))
	path := "/api/v1/donations/" + created.ID + "/feedback"

	res, _ = suite.do(http.MethodGet, path, nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)

	res, body = suite.do(http.MethodPost, path, map[string]any{"rating": 9})
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal("Rating must be one of: 1, 2, 3, 4, 5", body.Errors["rating"])

	res, body = suite.do(http.MethodPost, path, map[string]any{"rating": 5, "comments": "Picked up on time"})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)

	res, _ = suite.do(http.MethodPost, path, map[string]any{"rating": 4})
	suite.Equal(fiber.StatusConflict, res.StatusCode)

	res, body = suite.do(http.MethodGet, path, nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `"rating":5`)
	suite.Contains(string(body.Data), "Picked up on time")
}

func (suite *AppTestSuite) TestWasteLogs() {
	res, body := suite.do(http.MethodPost, "/api/v1/waste-logs", map[string]string{
		"food_name":  "Stale Bagels",
		"category":   "bakery",
		"quantity":   "6",
		"unit":       "items",
		"waste_date": "2099-01-01",
		"reason":     "expired",
	})
	suite.Require().Equal(fiber.StatusCreated, res.StatusCode, body.Error)

	var created struct {
		ID          string `json:"id"`
		ReasonLabel string `json:"reason_label"`
	}
	suite.Require().NoError(json.Unmarshal(body.Data, &created))
	suite.Equal("Expired", created.ReasonLabel)

	res, body = suite.do(http.MethodPost, "/api/v1/waste-logs", map[string]string{
		"food_name":  " ",
		"quantity":   "6",
		"unit":       "items",
		"waste_date": "2025-03-14",
		"reason":     "burnt",
	})
	suite.Equal(fiber.StatusUnprocessableEntity, res.StatusCode)
	suite.Equal("Food name is required", body.Errors["food_name"])
	suite.Equal("Reason must be one of: expired, spoiled, damaged, excess, other", body.Errors["reason"])

	res, body = suite.do(http.MethodGet, "/api/v1/waste-logs?reason=expired&q=bagel", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), "Stale Bagels")

	res, _ = suite.do(http.MethodGet, "/api/v1/waste-logs?reason=burnt", nil)
	suite.Equal(fiber.StatusBadRequest, res.StatusCode)

	res, body = suite.do(http.MethodGet, "/api/v1/waste-logs/reasons", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `{"id":"spoiled","name":"Spoiled"}`)

	res, body = suite.do(http.MethodGet, "/api/v1/waste-logs/summary?period=week", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.Contains(string(body.Data), `"period":"week"`)
	suite.Contains(string(body.Data), `"total_entries":1`)

	res, _ = suite.do(http.MethodDelete, "/api/v1/waste-logs/abc", nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)

	res, _ = suite.do(http.MethodDelete, "/api/v1/waste-logs/"+created.ID, nil)
	suite.Equal(fiber.StatusOK, res.StatusCode)

	res, body = suite.do(http.MethodGet, "/api/v1/waste-logs", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode)
	suite.NotContains(string(body.Data), "Stale Bagels")
}

func (suite *AppTestSuite) TestOrganizationAnalyticsLimited() {
	res, body := suite.do(http.MethodGet, "/api/v1/organizations/"+seed.OrganizationID("Food For All").String()+"/analytics?period=week", nil)
	suite.Require().Equal(fiber.StatusOK, res.StatusCode, body.Error)

	var report map[string]any
	suite.Require().NoError(json.Unmarshal(body.Data, &report))
	suite.Equal("Food For All", report["name"])
	suite.Equal(true, report["limited"])
	suite.NotContains(report, "top_donors")

	res, _ = suite.do(http.MethodGet, "/api/v1/organizations/abc/analytics", nil)
	suite.Equal(fiber.StatusNotFound, res.StatusCode)
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
