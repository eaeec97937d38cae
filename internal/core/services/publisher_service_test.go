package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/core/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// --- Mock PublisherRepository (full facade) ---
type MockPublisherRepository struct {
	MockPublisherReader
}

func (m *MockPublisherRepository) SavePublisher(ctx context.Context, publisher domain.Publisher) error {
	args := m.Called(ctx, publisher)
	return args.Error(0)
}

func (m *MockPublisherRepository) SavePublisherWithUser(ctx context.Context, user domain.User, publisher domain.Publisher) error {
	args := m.Called(ctx, user, publisher)
	return args.Error(0)
}

func (m *MockPublisherRepository) UpdatePublisher(ctx context.Context, publisher domain.Publisher) error {
	args := m.Called(ctx, publisher)
	return args.Error(0)
}

// --- Test Suite ---
type PublisherServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPublisherRepository
	mockUserRepo *MockUserReader
	service      portssvc.PublisherSvcFacade
}

func (suite *PublisherServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPublisherRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewPublisherService(suite.mockRepo, suite.mockUserRepo)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// --- Read Tests ---

func (suite *PublisherServiceTestSuite) TestGetPublisherByID_ComputesEntitlement() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	expiry := time.Now().Add(40 * 24 * time.Hour)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &expiry,
	}, nil).Once()

	resp, err := suite.service.GetPublisherByID(ctx, publisherID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntitlementActive, resp.Entitlement.State)
	suite.Equal(40, resp.Entitlement.DaysLeft)
}

func (suite *PublisherServiceTestSuite) TestGetPublisherByID_SuspendedBeatsUnexpiredDate() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	expiry := time.Now().Add(90 * 24 * time.Hour)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &expiry,
		Suspended:          true,
	}, nil).Once()

	resp, err := suite.service.GetPublisherByID(ctx, publisherID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntitlementSuspended, resp.Entitlement.State)
	suite.Zero(resp.Entitlement.DaysLeft)
}

// --- RegisterPublisher Tests ---

func (suite *PublisherServiceTestSuite) TestRegisterPublisher_SavesAccountAndProfileTogether() {
	ctx := context.Background()
	userReq := dto.RegisterUserRequest{Name: "Org Admin", Email: "Org@Example.com", Password: "password123"}
	profileReq := dto.CreatePublisherRequest{CompanyName: "Acme Events", OrganizationType: "company"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "org@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePublisherWithUser", ctx,
		mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "org@example.com" && u.Role == domain.RolePublisher
		}),
		mock.MatchedBy(func(p domain.Publisher) bool {
			return p.CompanyName == "Acme Events" && p.UserID != ""
		})).Return(nil).Once()

	user, publisher, err := suite.service.RegisterPublisher(ctx, userReq, profileReq)

	suite.Require().NoError(err)
	suite.Equal(domain.RolePublisher, user.Role)
	suite.Equal(user.UserID, publisher.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestRegisterPublisher_ProfileFailureCreatesNoAccount() {
	ctx := context.Background()
	userReq := dto.RegisterUserRequest{Name: "Org Admin", Email: "org@example.com", Password: "password123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "org@example.com").Return(nil, apperrors.ErrNotFound).Once()
	// the combined write is the only persistence path, so its failure means
	// neither row landed and the email stays usable
	suite.mockRepo.On("SavePublisherWithUser", ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	user, publisher, err := suite.service.RegisterPublisher(ctx, userReq, dto.CreatePublisherRequest{CompanyName: "Acme"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.Nil(publisher)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestRegisterPublisher_TakenEmailSkipsWrite() {
	ctx := context.Background()
	userReq := dto.RegisterUserRequest{Name: "Org Admin", Email: "taken@example.com", Password: "password123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}, nil).Once()

	user, publisher, err := suite.service.RegisterPublisher(ctx, userReq, dto.CreatePublisherRequest{CompanyName: "Acme"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.Nil(publisher)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePublisherWithUser", mock.Anything, mock.Anything, mock.Anything)
}

// --- ExtendSubscription Tests ---

func (suite *PublisherServiceTestSuite) TestExtendSubscription_MonthsFromLapsedExtendsFromNow() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	lapsed := time.Now().Add(-200 * 24 * time.Hour)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &lapsed,
	}, nil).Once()
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		// lapsed expiry extends from now, not from the stale date
		return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.After(time.Now().AddDate(0, 3, -1))
	})).Return(nil).Once()

	resp, err := suite.service.ExtendSubscription(ctx, publisherID, dto.ExtendSubscriptionRequest{Months: intPtr(3)}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.EntitlementActive, resp.Entitlement.State)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestExtendSubscription_MonthsStacksOnUnexpired() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	current := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &current,
	}, nil).Once()
	expected := current.AddDate(0, 6, 0)
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.Equal(expected)
	})).Return(nil).Once()

	_, err := suite.service.ExtendSubscription(ctx, publisherID, dto.ExtendSubscriptionRequest{Months: intPtr(6)}, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestExtendSubscription_DaysStacksOnUnexpired() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	current := time.Now().Add(15 * 24 * time.Hour).Truncate(time.Second)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &current,
	}, nil).Once()
	// an unexpired base is the stored expiry, so the result is exact and
	// independent of when within the request the clock is read
	expected := current.AddDate(0, 0, 107)
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.Equal(expected)
	})).Return(nil).Once()

	_, err := suite.service.ExtendSubscription(ctx, publisherID, dto.ExtendSubscriptionRequest{Days: intPtr(107)}, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestExtendSubscription_ExactlyOneMode() {
	ctx := context.Background()

	cases := []dto.ExtendSubscriptionRequest{
		{},
		{Months: intPtr(3), Days: intPtr(10)},
		{Months: intPtr(3), SetExpiry: strPtr("2027-01-01")},
	}
	for _, req := range cases {
		resp, err := suite.service.ExtendSubscription(ctx, uuid.NewString(), req, uuid.NewString())
		suite.Require().Error(err)
		suite.Nil(resp)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePublisher", mock.Anything, mock.Anything)
}

func (suite *PublisherServiceTestSuite) TestExtendSubscription_SetExpiryOverwrites() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	current := time.Now().Add(300 * 24 * time.Hour)

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).Return(&domain.Publisher{
		PublisherID:        publisherID,
		SubscriptionExpiry: &current,
	}, nil).Once()
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		// overwrite wins even when it shortens the entitlement
		return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.Year() == 2026 && p.SubscriptionExpiry.Month() == time.October
	})).Return(nil).Once()

	_, err := suite.service.ExtendSubscription(ctx, publisherID, dto.ExtendSubscriptionRequest{SetExpiry: strPtr("2026-10-15")}, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestExtendSubscription_BadDate() {
	ctx := context.Background()

	resp, err := suite.service.ExtendSubscription(ctx, uuid.NewString(), dto.ExtendSubscriptionRequest{SetExpiry: strPtr("next tuesday")}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Toggle Tests ---

func (suite *PublisherServiceTestSuite) TestSetSuspended_Persisted() {
	ctx := context.Background()
	publisherID := uuid.NewString()
	adminID := uuid.NewString()

	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).
		Return(&domain.Publisher{PublisherID: publisherID}, nil).Once()
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.Suspended && p.LastUpdatedBy == adminID
	})).Return(nil).Once()

	resp, err := suite.service.SetSuspended(ctx, publisherID, true, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntitlementSuspended, resp.Entitlement.State)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PublisherServiceTestSuite) TestSetServicePlan_IndependentOfBasePlan() {
	ctx := context.Background()
	publisherID := uuid.NewString()

	// no base subscription at all, service plan still toggles
	suite.mockRepo.On("FindPublisherByID", ctx, publisherID).
		Return(&domain.Publisher{PublisherID: publisherID}, nil).Once()
	suite.mockRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.ServicePlanActive
	})).Return(nil).Once()

	resp, err := suite.service.SetServicePlan(ctx, publisherID, true, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(resp.ServicePlanActive)
	suite.Equal(domain.EntitlementExpired, resp.Entitlement.State)
}

func (suite *PublisherServiceTestSuite) TestListPublishers_Page() {
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 10}

	suite.mockRepo.On("FindPublishers", ctx, "acme", params).
		Return([]domain.Publisher{{PublisherID: uuid.NewString()}}, 1, nil).Once()

	page, err := suite.service.ListPublishers(ctx, "acme", params)

	suite.Require().NoError(err)
	suite.Len(page.Items, 1)
	suite.Equal(1, page.TotalPages)
}

func TestPublisherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherServiceTestSuite))
}
