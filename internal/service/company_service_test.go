package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/events"
)

type companyFixture struct {
	svc       *CompanyService
	companies *fakeCompanyRepo
	profiles  *fakeProfileRepo
	changes   *fakeChangeRepo
	actor     events.Actor
}

func newCompanyFixture() companyFixture {
	dispatcher := events.NewInMemoryDispatcher()
	changes := &fakeChangeRepo{}
	NewAuditService(dispatcher, changes, zap.NewNop()).RegisterHandlers()

	companies := newFakeCompanyRepo()
	profiles := &fakeProfileRepo{}
	staffID := int64(5)
	return companyFixture{
		svc: NewCompanyService(CompanyDependencies{
			CompanyRepo:         companies,
			BusinessProfileRepo: profiles,
			RiskFactorRepo:      &fakeRiskRepo{},
			ChangeEventRepo:     changes,
			PolicyAccountRepo:   &fakeAccountRepo{},
			Dispatcher:          dispatcher,
			Logger:              zap.NewNop(),
		}),
		companies: companies,
		profiles:  profiles,
		changes:   changes,
		actor:     events.Actor{StaffID: &staffID, Username: "agent5"},
	}
}

func strPtr(s string) *string { return &s }

func TestCompanyService_CRUD(t *testing.T) {
	t.Run("Should return every submitted field after a create and fetch", func(t *testing.T) {
		f := newCompanyFixture()
		founded := domain.NewDate(mustDate(t, "2015-06-01"))
		size := domain.CompanySizeMedium
		status := domain.CompanyStatusPending
		input := CompanyInput{
			CompanyName:     "Acme Logistics",
			LegalName:       strPtr("Acme Logistics LLC"),
			TaxID:           strPtr("12-3456789"),
			PrimaryIndustry: strPtr("Transportation"),
			NAICSCode:       strPtr("484110"),
			EstablishedDate: &founded,
			CompanySize:     &size,
			Status:          &status,
		}
		created, err := f.svc.Create(context.Background(), f.actor, input)
		require.NoError(t, err)

		got, err := f.svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Logistics", got.CompanyName)
		assert.Equal(t, "Acme Logistics LLC", *got.LegalName)
		assert.Equal(t, "12-3456789", *got.TaxID)
		assert.Equal(t, "Transportation", *got.PrimaryIndustry)
		assert.Equal(t, "484110", *got.NAICSCode)
		assert.Equal(t, "2015-06-01", got.EstablishedDate.String())
		assert.Equal(t, domain.CompanySizeMedium, *got.CompanySize)
		assert.Equal(t, domain.CompanyStatusPending, got.Status)
	})
	t.Run("Should default status to active", func(t *testing.T) {
		f := newCompanyFixture()
		created, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Beta"})
		require.NoError(t, err)
		assert.Equal(t, domain.CompanyStatusActive, created.Status)
	})
	t.Run("Should keep omitted fields on update and audit both values", func(t *testing.T) {
		f := newCompanyFixture()
		created, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Gamma", TaxID: strPtr("99")})
		require.NoError(t, err)

		updated, err := f.svc.Update(context.Background(), f.actor, created.ID, CompanyInput{CompanyName: "Gamma Corp"})
		require.NoError(t, err)
		assert.Equal(t, "Gamma Corp", updated.CompanyName)
		assert.Equal(t, "99", *updated.TaxID)

		assert.Equal(t, []domain.ChangeEventType{domain.ChangeCompanyCreated, domain.ChangeCompanyUpdated}, f.changes.types())
		last := f.changes.events[1]
		assert.Equal(t, "Gamma", last.OldValue["company_name"])
		assert.Equal(t, "Gamma Corp", last.NewValue["company_name"])
		require.NotNil(t, last.ChangedBy)
		assert.Equal(t, int64(5), *last.ChangedBy)
	})
	t.Run("Should return NotFound when updating a missing company", func(t *testing.T) {
		f := newCompanyFixture()
		_, err := f.svc.Update(context.Background(), f.actor, 42, CompanyInput{CompanyName: "x"})
		de := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "Company not found", de.Message)
	})
	t.Run("Should delete and keep the audit trail", func(t *testing.T) {
		f := newCompanyFixture()
		created, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Delta"})
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(context.Background(), f.actor, created.ID))

		_, err = f.svc.Get(context.Background(), created.ID)
		requireStatus(t, err, http.StatusNotFound)

		trail, err := f.svc.ListChangeEvents(context.Background(), created.ID, domain.Page{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, trail.Items, 2)
		assert.Equal(t, domain.ChangeCompanyDeleted, trail.Items[1].EventType)
		assert.Equal(t, "Delta", trail.Items[1].OldValue["company_name"])
	})
	t.Run("Should not fail the mutation when the audit write fails", func(t *testing.T) {
		f := newCompanyFixture()
		f.changes.err = errors.New("audit store down")
		_, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Epsilon"})
		assert.NoError(t, err)
	})
}

func TestCompanyService_BusinessProfile(t *testing.T) {
	t.Run("Should return NotFound for a missing company", func(t *testing.T) {
		f := newCompanyFixture()
		_, err := f.svc.GetBusinessProfile(context.Background(), 9)
		de := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "Company not found", de.Message)
	})
	t.Run("Should return NotFound before any profile exists", func(t *testing.T) {
		f := newCompanyFixture()
		c, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Zeta"})
		require.NoError(t, err)
		_, err = f.svc.GetBusinessProfile(context.Background(), c.ID)
		de := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "Business profile not found", de.Message)
	})
	t.Run("Should keep exactly one current snapshot and carry omitted fields over", func(t *testing.T) {
		f := newCompanyFixture()
		c, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Eta"})
		require.NoError(t, err)

		employees := 40
		revenue := decimal.RequireFromString("2500000.00")
		_, err = f.svc.UpdateBusinessProfile(context.Background(), f.actor, c.ID, BusinessProfileInput{
			EmployeeCount: &employees,
			AnnualRevenue: &revenue,
			Locations:     map[string]any{"hq": "Austin"},
		})
		require.NoError(t, err)

		more := 55
		current, err := f.svc.UpdateBusinessProfile(context.Background(), f.actor, c.ID, BusinessProfileInput{EmployeeCount: &more})
		require.NoError(t, err)
		assert.Equal(t, 55, *current.EmployeeCount)
		assert.True(t, current.AnnualRevenue.Decimal.Equal(revenue))
		assert.Equal(t, "Austin", current.Locations["hq"])

		currents := 0
		for _, p := range f.profiles.history {
			if p.CompanyID == c.ID && p.IsCurrent {
				currents++
			}
		}
		assert.Equal(t, 1, currents)
		assert.Len(t, f.profiles.history, 2)

		got, err := f.svc.GetBusinessProfile(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, current.ID, got.ID)

		last := f.changes.events[len(f.changes.events)-1]
		assert.Equal(t, domain.ChangeProfileUpdated, last.EventType)
		assert.Equal(t, float64(40), last.OldValue["employee_count"])
		assert.Equal(t, float64(55), last.NewValue["employee_count"])
	})
}

func TestCompanyService_SubResources(t *testing.T) {
	t.Run("Should add a risk factor identified by the actor", func(t *testing.T) {
		f := newCompanyFixture()
		c, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Theta"})
		require.NoError(t, err)

		score := decimal.RequireFromString("7.25")
		factor, err := f.svc.AddRiskFactor(context.Background(), f.actor, c.ID, RiskFactorInput{
			RiskCategory: " Fire ",
			ImpactScore:  &score,
		})
		require.NoError(t, err)
		assert.Equal(t, "Fire", factor.RiskCategory)
		assert.Equal(t, domain.RiskSeverityMedium, factor.SeverityLevel)
		assert.Equal(t, int64(5), *factor.IdentifiedBy)

		factors, err := f.svc.ListRiskFactors(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Len(t, factors, 1)
	})
	t.Run("Should refuse a risk factor for a missing company", func(t *testing.T) {
		f := newCompanyFixture()
		_, err := f.svc.AddRiskFactor(context.Background(), f.actor, 77, RiskFactorInput{RiskCategory: "Flood"})
		requireStatus(t, err, http.StatusNotFound)
	})
	t.Run("Should open policy accounts for a company", func(t *testing.T) {
		f := newCompanyFixture()
		c, err := f.svc.Create(context.Background(), f.actor, CompanyInput{CompanyName: "Iota"})
		require.NoError(t, err)

		account, err := f.svc.CreateAccount(context.Background(), f.actor, c.ID, PolicyAccountInput{AccountNumber: "ACC-1"})
		require.NoError(t, err)
		assert.Equal(t, domain.PolicyStatusActive, account.Status)

		accounts, err := f.svc.ListAccounts(context.Background(), c.ID)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "ACC-1", accounts[0].AccountNumber)
	})
}
