package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
)

type fakeStaffRepo struct {
	mu      sync.Mutex
	users   map[int64]*domain.StaffUser
	nextID  int64
	creates int
	// createErr is returned by Create after the pre-check, simulating a
	// concurrent insert winning the race.
	createErr error
}

func newFakeStaffRepo(users ...*domain.StaffUser) *fakeStaffRepo {
	r := &fakeStaffRepo{users: map[int64]*domain.StaffUser{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, user *domain.StaffUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.StaffUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) FindActiveByIdentifier(_ context.Context, identifier string) (*domain.StaffUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (u.Username == identifier || u.Email == strings.ToLower(identifier)) && u.IsActive {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStaffRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

type fakeCompanyRepo struct {
	companies map[int64]*domain.Company
	nextID    int64
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[int64]*domain.Company{}}
}

func (r *fakeCompanyRepo) List(_ context.Context, _ repository.CompanyFilter, page domain.Page) (domain.PageResult[domain.Company], error) {
	items := make([]domain.Company, 0, len(r.companies))
	for _, c := range r.companies {
		items = append(items, *c)
	}
	return domain.PageResult[domain.Company]{Items: items, Info: domain.NewPageInfo(page, int64(len(items)))}, nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.companies[id]
	return ok, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *domain.Company) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *domain.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.companies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.companies, id)
	return nil
}

type fakeProfileRepo struct {
	history []*domain.BusinessProfile
}

func (r *fakeProfileRepo) current(companyID int64) *domain.BusinessProfile {
	for _, p := range r.history {
		if p.CompanyID == companyID && p.IsCurrent {
			return p
		}
	}
	return nil
}

func (r *fakeProfileRepo) GetCurrent(_ context.Context, companyID int64) (*domain.BusinessProfile, error) {
	if p := r.current(companyID); p != nil {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) ReplaceCurrent(_ context.Context, companyID int64, next repository.NextProfileFunc) (*domain.BusinessProfile, *domain.BusinessProfile, error) {
	previous := r.current(companyID)
	current := next(previous)
	if previous != nil {
		previous.IsCurrent = false
	}
	current.ID = int64(len(r.history) + 1)
	current.CompanyID = companyID
	current.IsCurrent = true
	r.history = append(r.history, current)
	return previous, current, nil
}

type fakeRiskRepo struct {
	factors []domain.RiskFactor
}

func (r *fakeRiskRepo) ListByCompany(_ context.Context, companyID int64) ([]domain.RiskFactor, error) {
	out := []domain.RiskFactor{}
	for _, f := range r.factors {
		if f.CompanyID == companyID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeRiskRepo) Create(_ context.Context, f *domain.RiskFactor) error {
	f.ID = int64(len(r.factors) + 1)
	r.factors = append(r.factors, *f)
	return nil
}

type fakeChangeRepo struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
}

func (r *fakeChangeRepo) ListByCompany(_ context.Context, companyID int64, page domain.Page) (domain.PageResult[domain.ChangeEvent], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ChangeEvent{}
	for _, e := range r.events {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return domain.PageResult[domain.ChangeEvent]{Items: out, Info: domain.NewPageInfo(page, int64(len(out)))}, nil
}

func (r *fakeChangeRepo) Create(_ context.Context, e *domain.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	e.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeChangeRepo) types() []domain.ChangeEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ChangeEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

type fakeAccountRepo struct {
	accounts []domain.PolicyAccount
}

func (r *fakeAccountRepo) ListByCompany(_ context.Context, companyID int64) ([]domain.PolicyAccount, error) {
	out := []domain.PolicyAccount{}
	for _, a := range r.accounts {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.PolicyAccount, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) Create(_ context.Context, a *domain.PolicyAccount) error {
	a.ID = int64(len(r.accounts) + 1)
	r.accounts = append(r.accounts, *a)
	return nil
}

type fakeDashboardRepo struct {
	metrics    domain.DashboardMetrics
	activities []domain.Activity
	tasks      []domain.UpcomingTask
	lastLimit  int
}

func (r *fakeDashboardRepo) Metrics(context.Context) (*domain.DashboardMetrics, error) {
	m := r.metrics
	return &m, nil
}

func (r *fakeDashboardRepo) RecentActivities(_ context.Context, limit int) ([]domain.Activity, error) {
	r.lastLimit = limit
	if limit < len(r.activities) {
		return r.activities[:limit], nil
	}
	return r.activities, nil
}

func (r *fakeDashboardRepo) UpcomingTasks(_ context.Context, limit int) ([]domain.UpcomingTask, error) {
	r.lastLimit = limit
	out := append([]domain.UpcomingTask(nil), r.tasks...)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeReportRepo struct {
	rows     []domain.CompanyReportRow
	total    int64
	countErr error
	// release gates both queries so the test observes them in flight together.
	started chan struct{}
	release chan struct{}
}

func (r *fakeReportRepo) wait(ctx context.Context) error {
	if r.started == nil {
		return nil
	}
	r.started <- struct{}{}
	select {
	case <-r.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeReportRepo) CompanyReport(ctx context.Context, _ repository.ReportFilter, _ domain.Page) ([]domain.CompanyReportRow, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.rows, nil
}

func (r *fakeReportRepo) CountCompanyReport(ctx context.Context, _ repository.ReportFilter) (int64, error) {
	if err := r.wait(ctx); err != nil {
		return 0, err
	}
	return r.total, r.countErr
}
