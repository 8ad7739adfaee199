package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/allocator"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/internal/core/services"
)

const testUserID = "user-1"

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	companies *fakeCompanyRepo
	accounts  *fakeAccountRepo
	service   portssvc.AccountSvcFacade
	ctx       context.Context
}

// SetupTest builds the hierarchy parent -> child plus an unrelated root "other".
func (suite *AccountServiceTestSuite) SetupTest() {
	suite.companies = newFakeCompanyRepo()
	suite.companies.add("parent", "")
	suite.companies.add("child", "parent")
	suite.companies.add("other", "")

	suite.accounts = newFakeAccountRepo(suite.companies)
	suite.service = services.NewAccountService(suite.accounts, suite.companies, &fakeTxManager{accounts: suite.accounts})
	suite.ctx = scope.WithActiveCompany(context.Background(), "parent")
}

func strPtr(s string) *string { return &s }

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccounts_Success() {
	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{
		{Name: "Cash", Code: "1000"},
		{Name: "Bank", Code: "1100"},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(created, 2)
	suite.Equal([]string{"parent"}, created[0].CompanyIDs)
	suite.Equal("1000", created[0].CodeIn("parent"))
	suite.Equal(testUserID, created[1].CreatedBy)
	suite.Len(suite.accounts.accounts, 2)
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_DuplicateNameInBatch() {
	_, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{
		{Name: "Cash", Code: "1000"},
		{Name: "Cash", Code: "1001"},
	}, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(apperrors.Message(err), "duplicate names: Cash")
	suite.Empty(suite.accounts.accounts, "failed batch must not persist anything")
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_NameUsedInChildCompany() {
	suite.accounts.seed("existing", "Cash", "5000", "child")

	_, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{Name: "Cash", Code: "1000"}}, testUserID)

	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "duplicate names: Cash")
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_DisjointScopesMayShareNames() {
	suite.accounts.seed("existing", "Cash", "1000", "other")

	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{Name: "Cash", Code: "1000"}}, testUserID)

	suite.Require().NoError(err)
	suite.Len(created, 1)
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_MissingName() {
	_, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{Code: "1000"}}, testUserID)

	suite.Require().Error(err)
	suite.Equal("The name must be set for every company to which this account belongs.", apperrors.Message(err))
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_MissingCode() {
	_, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{Name: "Cash"}}, testUserID)

	suite.Require().Error(err)
	suite.Equal("The code must be set for every company to which this account belongs.", apperrors.Message(err))
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_PrefixAllocatesDistinctCodes() {
	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{
		{Name: "Receivable A", Prefix: strPtr("10"), Digits: 4},
		{Name: "Receivable B", Prefix: strPtr("10"), Digits: 4},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("1001", created[0].Code)
	suite.Equal("1002", created[1].Code)
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_PrefixSkipsPersistedCode() {
	suite.accounts.seed("existing", "Old", "1001", "child")

	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{
		{Name: "New", Prefix: strPtr("10"), Digits: 4},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("1002", created[0].Code)
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_CodeFromCreateCommand() {
	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{
		Name: "Cash",
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandCreate, CompanyID: "parent", Code: "570"},
			{Op: domain.CommandCreate, CompanyID: "other", Code: "571"},
		},
		CompanyIDs: []string{"parent", "other"},
	}}, testUserID)

	suite.Require().NoError(err)
	suite.Equal("570", created[0].Code)
	suite.Equal("571", created[0].CodeIn("other"))
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_GroupsByCompanies() {
	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{
		{Name: "Cash", Code: "1", CompanyIDs: []string{"other"}},
		{Name: "Bank", Code: "2", CompanyIDs: []string{"other"}},
		{Name: "Cash", Code: "1"},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal([]string{"other"}, created[0].CompanyIDs)
	suite.Equal([]string{"parent"}, created[2].CompanyIDs)
}

func (suite *AccountServiceTestSuite) TestCreateAccounts_RequiresActiveCompany() {
	_, err := suite.service.CreateAccounts(context.Background(), []domain.AccountValues{{Name: "Cash", Code: "1"}}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestNewAccountName() {
	suite.accounts.seed("a1", "Cash", "1", "child")

	name, err := suite.service.NewAccountName(suite.ctx, "Cash", nil)
	suite.Require().NoError(err)
	suite.Equal("Cash.copy", name)

	name, err = suite.service.NewAccountName(suite.ctx, "Cash", allocator.NewClaims("Cash.copy"))
	suite.Require().NoError(err)
	suite.Equal("Cash.copy2", name)

	// an unset claims set holds the start name
	name, err = suite.service.NewAccountName(suite.ctx, "Bank", nil)
	suite.Require().NoError(err)
	suite.Equal("Bank.copy", name)

	name, err = suite.service.NewAccountName(suite.ctx, "Bank", allocator.Claims{})
	suite.Require().NoError(err)
	suite.Equal("Bank", name)
}

func (suite *AccountServiceTestSuite) TestNewAccountCode() {
	suite.accounts.seed("a1", "Cash", "1001", "parent")

	code, err := suite.service.NewAccountCode(suite.ctx, "1001", nil)
	suite.Require().NoError(err)
	suite.Equal("1002", code)
	code, err = suite.service.NewAccountCode(suite.ctx, "2001", nil)
	suite.Require().NoError(err)
	suite.Equal("2002", code)

	code, err = suite.service.NewAccountCode(suite.ctx, "2001", allocator.NewClaims())
	suite.Require().NoError(err)
	suite.Equal("2001", code)
}

func (suite *AccountServiceTestSuite) TestCopyAccounts() {
	suite.accounts.seed("src", "Cash", "1001", "parent")

	copies, err := suite.service.CopyAccounts(suite.ctx, []string{"src"}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(copies, 1)
	suite.Equal("Cash.copy", copies[0].Name)
	suite.Equal("1002", copies[0].Code)
	suite.NotEqual("src", copies[0].AccountID)
}

func (suite *AccountServiceTestSuite) TestCopyAccounts_BatchGetsDistinctValues() {
	suite.accounts.seed("src", "Cash", "1001", "parent")

	copies, err := suite.service.CopyAccounts(suite.ctx, []string{"src", "src"}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(copies, 2)
	suite.Equal("Cash.copy", copies[0].Name)
	suite.Equal("Cash.copy2", copies[1].Name)
	suite.Equal("1002", copies[0].Code)
	suite.Equal("1003", copies[1].Code)
}

func (suite *AccountServiceTestSuite) TestCopyAccounts_TwoRootsActiveNotFirst() {
	src := suite.accounts.seed("src", "Cash", "1001", "other", "parent")
	src.CodeMappings["parent"] = "2001"

	copies, err := suite.service.CopyAccounts(suite.ctx, []string{"src"}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(copies, 1)
	suite.Equal([]string{"parent", "other"}, copies[0].CompanyIDs)
	suite.Equal("2002", copies[0].Code)
	suite.Equal("2002", copies[0].CodeIn("parent"))
	suite.Equal("1002", copies[0].CodeIn("other"))
}

func (suite *AccountServiceTestSuite) TestCreateThenCopy_AcrossRoots() {
	created, err := suite.service.CreateAccounts(suite.ctx, []domain.AccountValues{{
		Name:       "Cash",
		Code:       "1001",
		CompanyIDs: []string{"other", "parent"},
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandCreate, CompanyID: "other", Code: "5001"},
		},
	}}, testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(created, 1)
	suite.Equal([]string{"parent", "other"}, created[0].CompanyIDs)
	suite.Equal("1001", created[0].CodeIn("parent"))
	suite.Equal("5001", created[0].CodeIn("other"))

	ctx := scope.WithActiveCompany(context.Background(), "other")
	copies, err := suite.service.CopyAccounts(ctx, []string{created[0].AccountID}, testUserID)

	suite.Require().NoError(err)
	suite.Require().Len(copies, 1)
	suite.Equal([]string{"other", "parent"}, copies[0].CompanyIDs)
	suite.Equal("5002", copies[0].Code)
	suite.Equal("1002", copies[0].CodeIn("parent"))
	suite.Equal("Cash.copy", copies[0].Name)
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_RenameIntoExistingName() {
	suite.accounts.seed("a1", "Cash", "1", "parent")
	suite.accounts.seed("a2", "Bank", "2", "child")

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{Name: strPtr("Bank")}, testUserID)

	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "duplicate names: Bank")
	suite.Equal("Cash", suite.accounts.accounts["a1"].Name, "failed write must roll back")
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_DeferredChecks() {
	suite.accounts.seed("a1", "Cash", "1", "parent")
	suite.accounts.seed("a2", "Bank", "2", "parent")

	ctx := scope.WithDeferredChecks(suite.ctx)
	_, err := suite.service.WriteAccounts(ctx, []string{"a1"}, domain.AccountUpdate{Name: strPtr("Bank")}, testUserID)
	suite.Require().NoError(err)

	err = suite.service.EnsureNameIsUnique(suite.ctx, []string{"a1"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_CodeDuplicate() {
	suite.accounts.seed("a1", "Cash", "1", "parent")
	suite.accounts.seed("a2", "Bank", "2", "child")

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{Code: strPtr("2")}, testUserID)

	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "duplicate codes: 2")
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_MappingCommands() {
	suite.accounts.seed("a1", "Cash", "1", "parent")

	updated, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CompanyIDs: []string{"parent", "other"},
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandLink, CompanyID: "other"},
		},
	}, testUserID)
	suite.Require().NoError(err)
	suite.Equal("1", updated[0].CodeIn("other"))

	updated, err = suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandUpdate, CompanyID: "other", Code: "9"},
		},
	}, testUserID)
	suite.Require().NoError(err)
	suite.Equal("9", updated[0].CodeIn("other"))
	suite.Equal("1", updated[0].Code)

	_, err = suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandDelete, CompanyID: "other"},
		},
	}, testUserID)
	suite.Require().Error(err, "every root company needs a code")
	suite.Contains(apperrors.Message(err), "The code must be set")
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_MoveToNewRoot() {
	suite.accounts.seed("a1", "Cash", "1", "parent")

	updated, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CompanyIDs: []string{"other"},
		CodeMappings: []domain.MappingCommand{
			{Op: domain.CommandCreate, CompanyID: "other", Code: "7"},
		},
	}, testUserID)

	suite.Require().NoError(err)
	suite.Equal([]string{"other"}, updated[0].CompanyIDs)
	suite.Equal("7", updated[0].Code)
	suite.Equal("7", updated[0].CodeIn("other"))
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_MoveToNewRootWithoutCode() {
	suite.accounts.seed("a1", "Cash", "1", "parent")

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CompanyIDs: []string{"parent", "other"},
	}, testUserID)

	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "The code must be set")
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_UnknownCommand() {
	suite.accounts.seed("a1", "Cash", "1", "parent")

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{
		CodeMappings: []domain.MappingCommand{{Op: "merge", CompanyID: "parent"}},
	}, testUserID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_ReconcileToggle() {
	acc := suite.accounts.seed("a1", "Cash", "1", "parent")
	acc.Reconcile = true
	suite.accounts.accounts["a1"] = acc
	suite.accounts.partial["a1"] = 1

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{Reconcile: new(bool)}, testUserID)
	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "partial reconciliations are still pending")

	suite.accounts.partial["a1"] = 0
	updated, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{Reconcile: new(bool)}, testUserID)
	suite.Require().NoError(err)
	suite.False(updated[0].Reconcile)
	reset, ok := suite.accounts.residualResets["a1"]
	suite.True(ok)
	suite.False(reset)
}

func (suite *AccountServiceTestSuite) TestWriteAccounts_CurrencyGuard() {
	suite.accounts.seed("a1", "Cash", "1", "parent")
	suite.accounts.otherCurrency["a1"] = 2

	_, err := suite.service.WriteAccounts(suite.ctx, []string{"a1"}, domain.AccountUpdate{CurrencyID: strPtr("EUR")}, testUserID)

	suite.Require().Error(err)
	suite.Contains(apperrors.Message(err), "different foreign currency")
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_HiddenOutsideAllowedCompanies() {
	suite.accounts.seed("a1", "Cash", "1", "other")

	_, err := suite.service.GetAccountByID(suite.ctx, "a1")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	ctx := scope.WithAllowedCompanies(suite.ctx, []string{"other"})
	acc, err := suite.service.GetAccountByID(ctx, "a1")
	suite.Require().NoError(err)
	suite.Equal("Cash", acc.Name)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	suite.accounts.seed("a1", "Cash", "1", "parent")
	suite.accounts.seed("a2", "Bank", "2", "other")

	accounts, err := suite.service.ListAccounts(suite.ctx, 10, 0)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.Equal("a1", accounts[0].AccountID)
}

func (suite *AccountServiceTestSuite) TestEnsureCodeIsUnique_NotFound() {
	err := suite.service.EnsureCodeIsUnique(suite.ctx, []string{"missing"})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
