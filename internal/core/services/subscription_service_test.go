package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/core/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// --- Mock PaymentProvider ---
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, receipt string) (*portssvc.PaymentOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	var order *portssvc.PaymentOrder
	if args.Get(0) != nil {
		order = args.Get(0).(*portssvc.PaymentOrder)
	}
	return order, args.Error(1)
}

func (m *MockPaymentProvider) VerifyPayment(ctx context.Context, confirmation dto.PaymentConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

// --- Test Suite ---
type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockPricingRepo   *MockPricingRepository
	mockPublisherRepo *MockPublisherRepository
	mockPayments      *MockPaymentProvider
	service           portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockPricingRepo = new(MockPricingRepository)
	suite.mockPublisherRepo = new(MockPublisherRepository)
	suite.mockPayments = new(MockPaymentProvider)
	suite.service = services.NewSubscriptionService(suite.mockPricingRepo, suite.mockPublisherRepo, suite.mockPayments)
}

func storedPricingConfig() *domain.PricingConfig {
	return &domain.PricingConfig{
		Currency: "INR",
		Plans: map[int]decimal.Decimal{
			3: decimal.NewFromInt(1000),
			6: decimal.NewFromInt(1800),
			9: decimal.NewFromInt(2400),
		},
		ServiceListingYearlyFee: decimal.NewFromInt(5000),
	}
}

func (suite *SubscriptionServiceTestSuite) TestGetPlans_OrderedByDuration() {
	ctx := context.Background()

	suite.mockPricingRepo.On("GetPricingConfig", ctx).Return(storedPricingConfig(), nil).Once()

	plans, err := suite.service.GetPlans(ctx)

	suite.Require().NoError(err)
	suite.Equal("INR", plans.Currency)
	suite.Require().Len(plans.Plans, 3)
	suite.Equal(3, plans.Plans[0].DurationInMonths)
	suite.Equal(9, plans.Plans[2].DurationInMonths)
	suite.True(plans.ServiceListingYearlyFee.Equal(decimal.NewFromInt(5000)))
}

func (suite *SubscriptionServiceTestSuite) TestCreateOrder_BasePlanUsesConfiguredPrice() {
	ctx := context.Background()
	userID := uuid.NewString()
	publisherID := uuid.NewString()

	suite.mockPublisherRepo.On("FindPublisherByUserID", ctx, userID).
		Return(&domain.Publisher{PublisherID: publisherID, UserID: userID}, nil).Once()
	suite.mockPricingRepo.On("GetPricingConfig", ctx).Return(storedPricingConfig(), nil).Once()
	suite.mockPayments.On("CreateOrder", ctx, decimal.NewFromInt(1800), "INR", mock.AnythingOfType("string")).
		Return(&portssvc.PaymentOrder{OrderID: "order_abc", Amount: decimal.NewFromInt(1800), Currency: "INR"}, nil).Once()

	resp, err := suite.service.CreateOrder(ctx, userID, dto.CreateOrderRequest{Kind: dto.OrderKindBasePlan, DurationInMonths: 6})

	suite.Require().NoError(err)
	suite.Equal("order_abc", resp.OrderID)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(1800)))
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateOrder_UnknownDuration() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockPublisherRepo.On("FindPublisherByUserID", ctx, userID).
		Return(&domain.Publisher{PublisherID: uuid.NewString(), UserID: userID}, nil).Once()
	suite.mockPricingRepo.On("GetPricingConfig", ctx).Return(storedPricingConfig(), nil).Once()

	resp, err := suite.service.CreateOrder(ctx, userID, dto.CreateOrderRequest{Kind: dto.OrderKindBasePlan, DurationInMonths: 12})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestVerifyAndApply_BasePlanExtendsExpiry() {
	ctx := context.Background()
	userID := uuid.NewString()
	publisherID := uuid.NewString()
	confirmation := dto.PaymentConfirmation{
		OrderID:          "order_abc",
		PaymentID:        "pay_xyz",
		Signature:        "sig",
		Kind:             dto.OrderKindBasePlan,
		DurationInMonths: 3,
	}

	suite.mockPublisherRepo.On("FindPublisherByUserID", ctx, userID).
		Return(&domain.Publisher{PublisherID: publisherID, UserID: userID}, nil).Once()
	suite.mockPayments.On("VerifyPayment", ctx, confirmation).Return(nil).Once()
	suite.mockPublisherRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.After(time.Now().AddDate(0, 3, -1))
	})).Return(nil).Once()

	resp, err := suite.service.VerifyAndApply(ctx, userID, confirmation)

	suite.Require().NoError(err)
	suite.Equal(domain.EntitlementActive, resp.Entitlement.State)
	suite.mockPublisherRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestVerifyAndApply_ServicePlanActivatesAddOn() {
	ctx := context.Background()
	userID := uuid.NewString()
	confirmation := dto.PaymentConfirmation{
		OrderID:   "order_svc",
		PaymentID: "pay_svc",
		Signature: "sig",
		Kind:      dto.OrderKindServicePlan,
	}

	suite.mockPublisherRepo.On("FindPublisherByUserID", ctx, userID).
		Return(&domain.Publisher{PublisherID: uuid.NewString(), UserID: userID}, nil).Once()
	suite.mockPayments.On("VerifyPayment", ctx, confirmation).Return(nil).Once()
	suite.mockPublisherRepo.On("UpdatePublisher", ctx, mock.MatchedBy(func(p domain.Publisher) bool {
		return p.ServicePlanActive && p.SubscriptionExpiry == nil
	})).Return(nil).Once()

	resp, err := suite.service.VerifyAndApply(ctx, userID, confirmation)

	suite.Require().NoError(err)
	suite.True(resp.ServicePlanActive)
	// the service add-on never grants the base entitlement
	suite.Equal(domain.EntitlementExpired, resp.Entitlement.State)
}

func (suite *SubscriptionServiceTestSuite) TestVerifyAndApply_FailedVerificationChangesNothing() {
	ctx := context.Background()
	userID := uuid.NewString()
	confirmation := dto.PaymentConfirmation{
		OrderID:   "order_abc",
		PaymentID: "pay_xyz",
		Signature: "tampered",
		Kind:      dto.OrderKindBasePlan,
	}

	suite.mockPublisherRepo.On("FindPublisherByUserID", ctx, userID).
		Return(&domain.Publisher{PublisherID: uuid.NewString(), UserID: userID}, nil).Once()
	suite.mockPayments.On("VerifyPayment", ctx, confirmation).Return(assert.AnError).Once()

	resp, err := suite.service.VerifyAndApply(ctx, userID, confirmation)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPublisherRepo.AssertNotCalled(suite.T(), "UpdatePublisher", mock.Anything, mock.Anything)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
