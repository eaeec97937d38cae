package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/handlers"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
	"github.com/unlockhq/unlock-backend/internal/utils"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// --- Mock ListingService ---
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) GetListingByID(ctx context.Context, listingID string) (*dto.ListingDetail, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListingDetail), args.Error(1)
}
func (m *MockListingService) ListListings(ctx context.Context, filter portsrepo.ListingFilter, params pagination.Params) (pagination.Page[domain.Listing], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(pagination.Page[domain.Listing]), args.Error(1)
}
func (m *MockListingService) CreateListing(ctx context.Context, publisherID string, typeTag domain.ListingType, payload map[string]any, actorID string) (*domain.Listing, error) {
	args := m.Called(ctx, publisherID, typeTag, payload, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingService) UpdateListing(ctx context.Context, listingID string, publisherID string, payload map[string]any, actorID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, publisherID, payload, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingService) SetListingActive(ctx context.Context, listingID string, publisherID string, isActive bool, actorID string) error {
	args := m.Called(ctx, listingID, publisherID, isActive, actorID)
	return args.Error(0)
}
func (m *MockListingService) DeleteListing(ctx context.Context, listingID string, publisherID string) error {
	args := m.Called(ctx, listingID, publisherID)
	return args.Error(0)
}
func (m *MockListingService) ApproveListing(ctx context.Context, listingID string, actorID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingService) RejectListing(ctx context.Context, listingID string, reason string, actorID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

var _ portssvc.ListingSvcFacade = (*MockListingService)(nil)

// --- Mock PublisherService ---
type MockPublisherService struct {
	mock.Mock
}

func (m *MockPublisherService) GetPublisherByID(ctx context.Context, publisherID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) GetPublisherByUserID(ctx context.Context, userID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) ListPublishers(ctx context.Context, query string, params pagination.Params) (pagination.Page[dto.PublisherResponse], error) {
	args := m.Called(ctx, query, params)
	return args.Get(0).(pagination.Page[dto.PublisherResponse]), args.Error(1)
}
func (m *MockPublisherService) RegisterPublisher(ctx context.Context, userReq dto.RegisterUserRequest, profileReq dto.CreatePublisherRequest) (*domain.User, *domain.Publisher, error) {
	args := m.Called(ctx, userReq, profileReq)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var publisher *domain.Publisher
	if args.Get(1) != nil {
		publisher = args.Get(1).(*domain.Publisher)
	}
	return user, publisher, args.Error(2)
}
func (m *MockPublisherService) CreatePublisher(ctx context.Context, req dto.CreatePublisherRequest, userID string) (*domain.Publisher, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publisher), args.Error(1)
}
func (m *MockPublisherService) UpdatePublisherProfile(ctx context.Context, publisherID string, req dto.UpdatePublisherRequest, actorID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) ExtendSubscription(ctx context.Context, publisherID string, req dto.ExtendSubscriptionRequest, actorID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) SetSuspended(ctx context.Context, publisherID string, suspended bool, actorID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID, suspended, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) SetServicePlan(ctx context.Context, publisherID string, active bool, actorID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID, active, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}
func (m *MockPublisherService) SetBlocked(ctx context.Context, publisherID string, blocked bool, actorID string) (*dto.PublisherResponse, error) {
	args := m.Called(ctx, publisherID, blocked, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublisherResponse), args.Error(1)
}

var _ portssvc.PublisherSvcFacade = (*MockPublisherService)(nil)

// --- Test Suite ---
type ListingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockListingService   *MockListingService
	mockPublisherService *MockPublisherService
	jwtSecret            string
}

func (suite *ListingHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "unlock-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()

	suite.mockListingService = new(MockListingService)
	suite.mockPublisherService = new(MockPublisherService)

	cfg := &config.Config{
		JWTSecret:     suite.jwtSecret,
		AuthRateLimit: "30-M",
	}
	services := &portssvc.ServiceContainer{
		Listing:   suite.mockListingService,
		Publisher: suite.mockPublisherService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ListingHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ListingHandlerTestSuite) TestApproveListing_Success() {
	adminID := uuid.NewString()
	listingID := uuid.NewString()
	approved := &domain.Listing{
		ListingID:   listingID,
		PublisherID: uuid.NewString(),
		Type:        domain.ListingTypeEvent,
		Status:      domain.StatusApproved,
		IsActive:    true,
	}
	suite.mockListingService.On("ApproveListing", mock.Anything, listingID, adminID).Return(approved, nil)

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/listings/%s/approve", listingID), token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Listing
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.StatusApproved, got.Status)
	suite.mockListingService.AssertExpectations(suite.T())
}

func (suite *ListingHandlerTestSuite) TestApproveListing_ConcurrentDecisionConflicts() {
	adminID := uuid.NewString()
	listingID := uuid.NewString()
	suite.mockListingService.On("ApproveListing", mock.Anything, listingID, adminID).
		Return(nil, apperrors.ErrInvalidTransition)

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/listings/%s/approve", listingID), token, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ListingHandlerTestSuite) TestRejectListing_MissingReasonIsBadRequest() {
	adminID := uuid.NewString()
	listingID := uuid.NewString()

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/listings/%s/reject", listingID), token, map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockListingService.AssertNotCalled(suite.T(), "RejectListing")
}

func (suite *ListingHandlerTestSuite) TestAdminRoutes_RequireAdminRole() {
	publisherID := uuid.NewString()
	token := suite.generateTestToken(publisherID, domain.RolePublisher)

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/listings/%s/approve", uuid.NewString()), token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockListingService.AssertNotCalled(suite.T(), "ApproveListing")
}

func (suite *ListingHandlerTestSuite) TestAdminRoutes_RejectMissingToken() {
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/listings/%s/approve", uuid.NewString()), "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ListingHandlerTestSuite) TestCreateListing_ScopedToCallerPublisher() {
	userID := uuid.NewString()
	publisherID := uuid.NewString()
	suite.mockPublisherService.On("GetPublisherByUserID", mock.Anything, userID).
		Return(&dto.PublisherResponse{PublisherID: publisherID, UserID: userID}, nil)

	payload := map[string]any{"title": "Founders meetup"}
	created := &domain.Listing{
		ListingID:   uuid.NewString(),
		PublisherID: publisherID,
		Type:        domain.ListingTypeEvent,
		Status:      domain.StatusPending,
		IsActive:    true,
		Payload:     payload,
	}
	suite.mockListingService.On("CreateListing", mock.Anything, publisherID, domain.ListingTypeEvent, payload, userID).
		Return(created, nil)

	token := suite.generateTestToken(userID, domain.RolePublisher)
	body := dto.CreateListingRequest{TypeTag: domain.ListingTypeEvent, Payload: payload}
	w := suite.doRequest(http.MethodPost, "/api/v1/publisher/listings", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Listing
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.StatusPending, got.Status)
	suite.mockListingService.AssertExpectations(suite.T())
}

func (suite *ListingHandlerTestSuite) TestCreateListing_ValidationErrorsCarryFields() {
	userID := uuid.NewString()
	publisherID := uuid.NewString()
	suite.mockPublisherService.On("GetPublisherByUserID", mock.Anything, userID).
		Return(&dto.PublisherResponse{PublisherID: publisherID, UserID: userID}, nil)

	payload := map[string]any{"title": "x"}
	suite.mockListingService.On("CreateListing", mock.Anything, publisherID, domain.ListingTypeEvent, payload, userID).
		Return(nil, apperrors.NewValidationError(apperrors.FieldError{Field: "workEmail", Message: "workEmail is required"}))

	token := suite.generateTestToken(userID, domain.RolePublisher)
	body := dto.CreateListingRequest{TypeTag: domain.ListingTypeEvent, Payload: payload}
	w := suite.doRequest(http.MethodPost, "/api/v1/publisher/listings", token, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp struct {
		Fields []apperrors.FieldError `json:"fields"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Fields, 1)
	suite.Equal("workEmail", resp.Fields[0].Field)
}

func (suite *ListingHandlerTestSuite) TestGetOwnListing_OtherPublisherForbidden() {
	userID := uuid.NewString()
	listingID := uuid.NewString()
	suite.mockPublisherService.On("GetPublisherByUserID", mock.Anything, userID).
		Return(&dto.PublisherResponse{PublisherID: uuid.NewString(), UserID: userID}, nil)
	suite.mockListingService.On("GetListingByID", mock.Anything, listingID).
		Return(&dto.ListingDetail{Listing: domain.Listing{ListingID: listingID, PublisherID: uuid.NewString()}}, nil)

	token := suite.generateTestToken(userID, domain.RolePublisher)
	w := suite.doRequest(http.MethodGet, "/api/v1/publisher/listings/"+listingID, token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ListingHandlerTestSuite) TestListAllListings_PassesFilters() {
	adminID := uuid.NewString()
	pending := domain.StatusPending
	expectedFilter := portsrepo.ListingFilter{
		Status: &pending,
		Sort:   portsrepo.SortNewest,
	}
	page := pagination.Page[domain.Listing]{Items: []domain.Listing{}, Total: 0, PageNumber: 1, TotalPages: 1}
	suite.mockListingService.On("ListListings", mock.Anything, expectedFilter, pagination.Params{Page: 1, Limit: 10}).
		Return(page, nil)

	token := suite.generateTestToken(adminID, domain.RoleAdmin)
	w := suite.doRequest(http.MethodGet, "/api/v1/admin/listings?status=pending", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockListingService.AssertExpectations(suite.T())
}

func TestListingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}
