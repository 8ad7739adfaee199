package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/internal/core/services"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string, limit int, offset int) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) CountJournalsByCode(ctx context.Context, companyID string, code string, excludeID string) (int, error) {
	args := m.Called(ctx, companyID, code, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	args := m.Called(ctx, journals)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockJournalRepository
	service  portssvc.JournalSvcFacade
	ctx      context.Context
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.service = services.NewJournalService(suite.mockRepo, &fakeTxManager{})
	suite.ctx = scope.WithActiveCompany(context.Background(), "c1")
}

func (suite *JournalServiceTestSuite) codeUsed(code string) {
	suite.mockRepo.On("CountJournalsByCode", mock.Anything, "c1", code, mock.Anything).Return(1, nil)
}

func (suite *JournalServiceTestSuite) codesFree() {
	suite.mockRepo.On("CountJournalsByCode", mock.Anything, "c1", mock.Anything, mock.Anything).Return(0, nil)
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournals_ComputesCodes() {
	suite.codeUsed("BNK1")
	suite.codeUsed("INV")
	suite.codesFree()
	suite.mockRepo.On("SaveJournals", mock.Anything, mock.AnythingOfType("[]domain.Journal")).Return(nil).Once()

	journals, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Main bank", Type: domain.JournalBank},
		{Name: "Second bank", Type: domain.JournalBank},
		{Name: "Sales", Type: domain.JournalSale},
		{Name: "Misc", Type: domain.JournalGeneral},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(journals, 4)
	suite.Equal("BNK2", journals[0].Code)
	suite.Equal("BNK3", journals[1].Code, "batch claims must not hand out the same code twice")
	suite.Equal("INV2", journals[2].Code)
	suite.Equal("MISC", journals[3].Code)
	suite.Equal("c1", journals[0].CompanyID)
	suite.False(journals[0].CodeOverridden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournals_ExplicitCodeOverrides() {
	suite.mockRepo.On("SaveJournals", mock.Anything, mock.Anything).Return(nil).Once()

	journals, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Custom", Type: domain.JournalCash, Code: "PETTY"},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("PETTY", journals[0].Code)
	suite.True(journals[0].CodeOverridden)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountJournalsByCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournals_CodeTooLong() {
	_, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Custom", Type: domain.JournalCash, Code: "ABCDEFGHIJKLMNOP"},
	}, testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveJournals", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournals_CodeLengthCountsCharacters() {
	suite.mockRepo.On("SaveJournals", mock.Anything, mock.Anything).Return(nil).Once()

	// 15 characters, 16 bytes
	journals, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Divers", Type: domain.JournalGeneral, Code: "ÉCRITURESDIVERS"},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("ÉCRITURESDIVERS", journals[0].Code)
}

func (suite *JournalServiceTestSuite) TestCreateJournals_UnknownType() {
	_, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Odd", Type: "payroll"},
	}, testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournals_Exhausted() {
	suite.mockRepo.On("CountJournalsByCode", mock.Anything, "c1", mock.Anything, mock.Anything).Return(1, nil)

	_, err := suite.service.CreateJournals(suite.ctx, []domain.JournalValues{
		{Name: "Bank", Type: domain.JournalBank},
	}, testUserID)

	suite.ErrorIs(err, apperrors.ErrAllocationExhausted)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "CountJournalsByCode", 99)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_TypeChangeRecomputesCode() {
	existing := &domain.Journal{JournalID: "j1", CompanyID: "c1", Name: "Bank", Type: domain.JournalBank, Code: "BNK1"}
	suite.mockRepo.On("FindJournalByID", mock.Anything, "j1").Return(existing, nil)
	suite.codesFree()
	suite.mockRepo.On("UpdateJournal", mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Code == "CSH1" && j.Type == domain.JournalCash
	})).Return(nil).Once()

	cash := domain.JournalCash
	journal, err := suite.service.UpdateJournal(suite.ctx, "j1", domain.JournalUpdate{Type: &cash}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("CSH1", journal.Code)
	suite.Equal(testUserID, journal.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_OverriddenCodeIsKept() {
	existing := &domain.Journal{JournalID: "j1", CompanyID: "c1", Type: domain.JournalBank, Code: "MYBANK", CodeOverridden: true}
	suite.mockRepo.On("FindJournalByID", mock.Anything, "j1").Return(existing, nil)
	suite.mockRepo.On("UpdateJournal", mock.Anything, mock.Anything).Return(nil).Once()

	cash := domain.JournalCash
	journal, err := suite.service.UpdateJournal(suite.ctx, "j1", domain.JournalUpdate{Type: &cash}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("MYBANK", journal.Code)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountJournalsByCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_ResetCode() {
	existing := &domain.Journal{JournalID: "j1", CompanyID: "c1", Type: domain.JournalPurchase, Code: "MINE", CodeOverridden: true}
	suite.mockRepo.On("FindJournalByID", mock.Anything, "j1").Return(existing, nil)
	suite.mockRepo.On("CountJournalsByCode", mock.Anything, "c1", "BILL", "j1").Return(0, nil)
	suite.mockRepo.On("UpdateJournal", mock.Anything, mock.Anything).Return(nil).Once()

	journal, err := suite.service.UpdateJournal(suite.ctx, "j1", domain.JournalUpdate{ResetCode: true}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("BILL", journal.Code)
	suite.False(journal.CodeOverridden)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_OtherCompany() {
	suite.mockRepo.On("FindJournalByID", mock.Anything, "j1").Return(&domain.Journal{JournalID: "j1", CompanyID: "c2"}, nil)

	_, err := suite.service.GetJournalByID(suite.ctx, "j1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournals() {
	suite.mockRepo.On("ListJournals", mock.Anything, "c1", 20, 0).Return(nil, nil)

	journals, err := suite.service.ListJournals(suite.ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(journals)
	suite.Empty(journals)
}

// --- Run Test Suite ---

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
