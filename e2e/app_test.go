package e2e

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type loginResponse struct {
	Token string `json:"token"`
}

type expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

type budget struct {
	ID    string  `json:"id"`
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Used  float64 `json:"used"`
}

// E2ETestSuite drives the API of a running server
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	request playwright.APIRequestContext
	token   string
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	request, err := pw.Request.NewContext(playwright.APIRequestNewContextOptions{
		BaseURL: playwright.String(appURL),
	})
	require.NoError(suite.T(), err, "could not create request context")
	suite.request = request
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.request != nil {
		suite.request.Dispose()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	suite.token = suite.login()
}

func (suite *E2ETestSuite) auth() map[string]string {
	return map[string]string{"Authorization": "Bearer " + suite.token}
}

func (suite *E2ETestSuite) login() string {
	resp, err := suite.request.Post("/api/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": "testuser", "password": "testpass123"},
	})
	require.NoError(suite.T(), err, "login request failed")
	require.Equal(suite.T(), 200, resp.Status(), "login rejected")

	var body loginResponse
	require.NoError(suite.T(), resp.JSON(&body))
	require.NotEmpty(suite.T(), body.Token)
	return body.Token
}

func (suite *E2ETestSuite) TestUnauthorized() {
	resp, err := suite.request.Get("/api/expenses")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 401, resp.Status())
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Create Expense
	resp, err := suite.request.Post("/api/expenses", playwright.APIRequestContextPostOptions{
		Headers: suite.auth(),
		Data: map[string]any{
			"description": "Lunch Test",
			"amount":      12.5,
			"date":        "2024-05-10",
			"category":    "Dining",
		},
	})
	require.NoError(suite.T(), err, "failed to create expense")
	require.Equal(suite.T(), 201, resp.Status())

	var created expense
	require.NoError(suite.T(), resp.JSON(&created))

	// Verify in List
	resp, err = suite.request.Get("/api/expenses", playwright.APIRequestContextGetOptions{
		Headers: suite.auth(),
		Params:  map[string]any{"date": "2024-05-10"},
	})
	require.NoError(suite.T(), err)
	var day []expense
	require.NoError(suite.T(), resp.JSON(&day))
	require.Len(suite.T(), day, 1, "expense item count mismatch")
	assert.Equal(suite.T(), "Lunch Test", day[0].Description)
	assert.Equal(suite.T(), 12.5, day[0].Amount)

	// Budget seeded by the expense
	resp, err = suite.request.Get("/api/budgets", playwright.APIRequestContextGetOptions{Headers: suite.auth()})
	require.NoError(suite.T(), err)
	var budgets []budget
	require.NoError(suite.T(), resp.JSON(&budgets))
	require.NotEmpty(suite.T(), budgets)
	assert.Equal(suite.T(), "May", budgets[0].Month)
	assert.Equal(suite.T(), 12.5, budgets[0].Used)

	// Delete and verify the budget is released
	resp, err = suite.request.Delete("/api/expenses/"+created.ID, playwright.APIRequestContextDeleteOptions{
		Headers: suite.auth(),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 204, resp.Status())

	resp, err = suite.request.Get("/api/budgets", playwright.APIRequestContextGetOptions{Headers: suite.auth()})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), resp.JSON(&budgets))
	assert.Equal(suite.T(), 0.0, budgets[0].Used)
}

func (suite *E2ETestSuite) TestReminderPushesToDevice() {
	resp, err := suite.request.Put("/api/device", playwright.APIRequestContextPutOptions{
		Headers: suite.auth(),
		Data:    map[string]string{"token": "e2e-device"},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 204, resp.Status())

	resp, err = suite.request.Post("/api/reminders", playwright.APIRequestContextPostOptions{
		Headers: suite.auth(),
		Data:    map[string]string{"name": "Evening check", "time": "8:00 PM"},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 201, resp.Status())

	assert.Eventually(suite.T(), func() bool {
		for _, p := range pushes.all() {
			if p.Token == "e2e-device" && p.Title == "Evening check" {
				return true
			}
		}
		return false
	}, 5*time.Second, 100*time.Millisecond, "creation trigger was not pushed")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
