package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/core/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// --- Mock PricingConfigRepository ---
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) GetPricingConfig(ctx context.Context) (*domain.PricingConfig, error) {
	args := m.Called(ctx)
	var config *domain.PricingConfig
	if args.Get(0) != nil {
		config = args.Get(0).(*domain.PricingConfig)
	}
	return config, args.Error(1)
}

func (m *MockPricingRepository) SavePricingConfig(ctx context.Context, config domain.PricingConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// --- Test Suite ---
type PricingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPricingRepository
	service  portssvc.PricingSvcFacade
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPricingRepository)
	suite.service = services.NewPricingService(suite.mockRepo)
}

func validPricingRequest() dto.UpdatePricingConfigRequest {
	return dto.UpdatePricingConfigRequest{
		Currency: "INR",
		Plans: map[string]decimal.Decimal{
			"3": decimal.NewFromInt(1000),
			"6": decimal.NewFromInt(1800),
			"9": decimal.NewFromInt(2400),
		},
		ServiceListingYearlyFee: decimal.NewFromInt(5000),
	}
}

func (suite *PricingServiceTestSuite) TestUpdateConfig_Success() {
	ctx := context.Background()
	adminID := "admin-1"

	suite.mockRepo.On("SavePricingConfig", ctx, mock.MatchedBy(func(c domain.PricingConfig) bool {
		return c.Currency == "INR" && c.Plans[6].Equal(decimal.NewFromInt(1800))
	})).Return(nil).Once()

	config, err := suite.service.UpdateConfig(ctx, validPricingRequest(), adminID)

	suite.Require().NoError(err)
	suite.Equal("INR", config.Currency)
	suite.True(config.Plans[3].Equal(decimal.NewFromInt(1000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestUpdateConfig_RoundsToWholeUnits() {
	ctx := context.Background()
	req := validPricingRequest()
	req.Plans["3"] = decimal.NewFromFloat(999.6)

	suite.mockRepo.On("SavePricingConfig", ctx, mock.MatchedBy(func(c domain.PricingConfig) bool {
		return c.Plans[3].Equal(decimal.NewFromInt(1000))
	})).Return(nil).Once()

	_, err := suite.service.UpdateConfig(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestUpdateConfig_MonotonicityViolationLeavesStoreUntouched() {
	ctx := context.Background()
	req := validPricingRequest()
	req.Plans["9"] = decimal.NewFromInt(1500) // cheaper than the 6-month plan

	config, err := suite.service.UpdateConfig(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "9-month price must be >= 6-month price")
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePricingConfig", mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestUpdateConfig_MissingDuration() {
	ctx := context.Background()
	req := validPricingRequest()
	delete(req.Plans, "6")

	config, err := suite.service.UpdateConfig(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePricingConfig", mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestUpdateConfig_NonNumericPlanKey() {
	ctx := context.Background()
	req := validPricingRequest()
	req.Plans["quarterly"] = decimal.NewFromInt(1000)

	config, err := suite.service.UpdateConfig(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PricingServiceTestSuite) TestGetConfig_NotFoundPassesThrough() {
	ctx := context.Background()

	suite.mockRepo.On("GetPricingConfig", ctx).Return(nil, apperrors.ErrNotFound).Once()

	config, err := suite.service.GetConfig(ctx)

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPricingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
