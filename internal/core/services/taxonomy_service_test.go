package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/core/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// --- Mock TaxonomyRepository ---
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) FindEntryByID(ctx context.Context, kind domain.RegistryKind, entryID string) (*domain.TaxonomyEntry, error) {
	args := m.Called(ctx, kind, entryID)
	var entry *domain.TaxonomyEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.TaxonomyEntry)
	}
	return entry, args.Error(1)
}

func (m *MockTaxonomyRepository) FindEntries(ctx context.Context, kind domain.RegistryKind, filter portsrepo.TaxonomyFilter) ([]domain.TaxonomyEntry, error) {
	args := m.Called(ctx, kind, filter)
	var entries []domain.TaxonomyEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.TaxonomyEntry)
	}
	return entries, args.Error(1)
}

func (m *MockTaxonomyRepository) EntryNameExists(ctx context.Context, kind domain.RegistryKind, name string, excludeID string) (bool, error) {
	args := m.Called(ctx, kind, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxonomyRepository) SaveEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) UpdateEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error {
	args := m.Called(ctx, kind, entryID)
	return args.Error(0)
}

// --- Test Suite ---
type TaxonomyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTaxonomyRepository
	service  portssvc.TaxonomySvcFacade
}

func (suite *TaxonomyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaxonomyRepository)
	suite.service = services.NewTaxonomyService(suite.mockRepo)
}

func (suite *TaxonomyServiceTestSuite) TestCreateEntry_TrimsAndDefaultsActive() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockRepo.On("EntryNameExists", ctx, domain.RegistryStartupStages, "Seed", "").Return(false, nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.TaxonomyEntry) bool {
		return e.Name == "Seed" && e.IsActive && e.Kind == domain.RegistryStartupStages
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, domain.RegistryStartupStages, dto.TaxonomyEntryRequest{Name: "  Seed  "}, adminID)

	suite.Require().NoError(err)
	suite.Equal("Seed", entry.Name)
	suite.True(entry.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxonomyServiceTestSuite) TestCreateEntry_BlankName() {
	ctx := context.Background()

	entry, err := suite.service.CreateEntry(ctx, domain.RegistryPublisherTypes, dto.TaxonomyEntryRequest{Name: "   "}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *TaxonomyServiceTestSuite) TestCreateEntry_DuplicateName() {
	ctx := context.Background()

	suite.mockRepo.On("EntryNameExists", ctx, domain.RegistryEventCategories, "Networking", "").Return(true, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, domain.RegistryEventCategories, dto.TaxonomyEntryRequest{Name: "Networking"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *TaxonomyServiceTestSuite) TestCreateEntry_UnknownRegistry() {
	ctx := context.Background()

	entry, err := suite.service.CreateEntry(ctx, domain.RegistryKind("colors"), dto.TaxonomyEntryRequest{Name: "Blue"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxonomyServiceTestSuite) TestUpdateEntry_RenameExcludesSelf() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, domain.RegistryOrganizerTypes, entryID).Return(&domain.TaxonomyEntry{
		EntryID:  entryID,
		Kind:     domain.RegistryOrganizerTypes,
		Name:     "Accelerator",
		IsActive: true,
	}, nil).Once()
	// renaming to a different casing of itself is allowed
	suite.mockRepo.On("EntryNameExists", ctx, domain.RegistryOrganizerTypes, "ACCELERATOR", entryID).Return(false, nil).Once()
	suite.mockRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.TaxonomyEntry) bool {
		return e.Name == "ACCELERATOR"
	})).Return(nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, domain.RegistryOrganizerTypes, entryID, dto.TaxonomyEntryRequest{Name: "ACCELERATOR"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("ACCELERATOR", entry.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxonomyServiceTestSuite) TestSetEntryActive_Deactivate() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, domain.RegistryChallengeCategories, entryID).Return(&domain.TaxonomyEntry{
		EntryID:  entryID,
		Kind:     domain.RegistryChallengeCategories,
		Name:     "Fintech",
		IsActive: true,
	}, nil).Once()
	suite.mockRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.TaxonomyEntry) bool {
		return !e.IsActive
	})).Return(nil).Once()

	entry, err := suite.service.SetEntryActive(ctx, domain.RegistryChallengeCategories, entryID, false, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(entry.IsActive)
}

func (suite *TaxonomyServiceTestSuite) TestListActiveEntries_FiltersActive() {
	ctx := context.Background()

	suite.mockRepo.On("FindEntries", ctx, domain.RegistryPublisherTypes, mock.MatchedBy(func(f portsrepo.TaxonomyFilter) bool {
		return f.ActiveOnly != nil && *f.ActiveOnly
	})).Return([]domain.TaxonomyEntry{{Name: "Startup", IsActive: true}}, nil).Once()

	entries, err := suite.service.ListActiveEntries(ctx, domain.RegistryPublisherTypes)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxonomyServiceTestSuite) TestDeleteEntry_NotFoundPassesThrough() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("DeleteEntry", ctx, domain.RegistryStartupStages, entryID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteEntry(ctx, domain.RegistryStartupStages, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTaxonomyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxonomyServiceTestSuite))
}
