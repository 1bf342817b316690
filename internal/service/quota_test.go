package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itsarbaz51/email-server-api/internal/domain"
)

// Фейковые хранилища для проверки квот без базы данных

type fakeTenantStore struct {
	tenant *domain.Tenant
}

func (f *fakeTenantStore) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return f.tenant, nil
}

type fakeSubscriptionStore struct {
	sub *domain.Subscription
}

func (f *fakeSubscriptionStore) GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	return f.sub, nil
}

type fakeCounter struct {
	count int64
}

func (f *fakeCounter) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	return f.count, nil
}

type fakeMessageCounter struct {
	received int64
	sent     int64
}

func (f *fakeMessageCounter) CountReceivedByMailbox(ctx context.Context, mailboxID string) (int64, error) {
	return f.received, nil
}

func (f *fakeMessageCounter) CountSentByMailbox(ctx context.Context, mailboxID string) (int64, error) {
	return f.sent, nil
}

func newQuota(tenant *domain.Tenant, sub *domain.Subscription, domains, mailboxes int64, msgs *fakeMessageCounter) *QuotaService {
	if msgs == nil {
		msgs = &fakeMessageCounter{}
	}
	return NewQuotaService(
		&fakeTenantStore{tenant: tenant},
		&fakeSubscriptionStore{sub: sub},
		&fakeCounter{count: domains},
		&fakeCounter{count: mailboxes},
		msgs,
	)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func TestCheckTrialWindowAppliesFreeLimits(t *testing.T) {
	t.Parallel()

	tenant := &domain.Tenant{
		ID:        "t1",
		CreatedAt: fixedNow().AddDate(0, 0, -3), // 3 дня с регистрации
	}
	q := newQuota(tenant, nil, 0, 0, &fakeMessageCounter{received: 499})
	q.now = fixedNow

	dec, err := q.Check(context.Background(), "t1", "m1", ActionReceiveMail)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	// Лимит FREE на приём — 500 писем
	q = newQuota(tenant, nil, 0, 0, &fakeMessageCounter{received: 500})
	q.now = fixedNow
	dec, err = q.Check(context.Background(), "t1", "m1", ActionReceiveMail)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, ReasonLimitExceeded, dec.Reason)
}

func TestCheckTrialExpired(t *testing.T) {
	t.Parallel()

	tenant := &domain.Tenant{
		ID:        "t1",
		CreatedAt: fixedNow().AddDate(0, 0, -9), // 9 дней — триал закончился
	}
	q := newQuota(tenant, nil, 0, 0, nil)
	q.now = fixedNow

	for _, action := range []Action{ActionCreateDomain, ActionCreateMailbox, ActionSendMail, ActionReceiveMail, ActionVerifyDomain} {
		dec, err := q.Check(context.Background(), "t1", "m1", action)
		require.NoError(t, err)
		assert.False(t, dec.Allowed, "действие %s должно быть запрещено", action)
		assert.Equal(t, ReasonTrialExpired, dec.Reason)
	}
}

func TestCheckSubscriptionExpired(t *testing.T) {
	t.Parallel()

	sub := &domain.Subscription{
		TenantID:     "t1",
		Plan:         domain.PlanBasic,
		BillingCycle: domain.CycleMonthly,
		EndDate:      fixedNow().AddDate(0, 0, -1),
		IsActive:     true,
	}
	q := newQuota(nil, sub, 0, 0, nil)
	q.now = fixedNow

	dec, err := q.Check(context.Background(), "t1", "m1", ActionReceiveMail)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, ReasonSubscriptionExpired, dec.Reason)
}

func TestCheckBasicPlanLimits(t *testing.T) {
	t.Parallel()

	sub := &domain.Subscription{
		TenantID:     "t1",
		Plan:         domain.PlanBasic,
		BillingCycle: domain.CycleMonthly,
		EndDate:      fixedNow().AddDate(0, 1, 0),
		IsActive:     true,
	}

	// Доменов уже 3 из 3 — создание запрещено
	q := newQuota(nil, sub, 3, 0, nil)
	q.now = fixedNow
	dec, err := q.Check(context.Background(), "t1", "", ActionCreateDomain)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)

	// Ящиков 9 из 10 — создание разрешено
	q = newQuota(nil, sub, 0, 9, nil)
	q.now = fixedNow
	dec, err = q.Check(context.Background(), "t1", "", ActionCreateMailbox)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestCheckPremiumUnlimitedMail(t *testing.T) {
	t.Parallel()

	sub := &domain.Subscription{
		TenantID:     "t1",
		Plan:         domain.PlanPremium,
		BillingCycle: domain.CycleMonthly,
		EndDate:      fixedNow().AddDate(1, 0, 0),
		IsActive:     true,
	}
	q := newQuota(nil, sub, 0, 0, &fakeMessageCounter{received: 10_000_000, sent: 10_000_000})
	q.now = fixedNow

	dec, err := q.Check(context.Background(), "t1", "m1", ActionReceiveMail)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	dec, err = q.Check(context.Background(), "t1", "m1", ActionSendMail)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestCheckVerifyDomainSkipsCounts(t *testing.T) {
	t.Parallel()

	sub := &domain.Subscription{
		TenantID:     "t1",
		Plan:         domain.PlanFree,
		BillingCycle: domain.CycleMonthly,
		EndDate:      fixedNow().AddDate(0, 1, 0),
		IsActive:     true,
	}
	// Счётчики выше любых лимитов, но verifyDomain их не смотрит
	q := newQuota(nil, sub, 100, 100, &fakeMessageCounter{received: 100000, sent: 100000})
	q.now = fixedNow

	dec, err := q.Check(context.Background(), "t1", "", ActionVerifyDomain)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestCheckTenantNotFound(t *testing.T) {
	t.Parallel()

	q := newQuota(nil, nil, 0, 0, nil)
	q.now = fixedNow

	_, err := q.Check(context.Background(), "missing", "", ActionReceiveMail)
	require.ErrorIs(t, err, ErrTenantNotFound)
}

func TestCheckYearlyCycleScalesLimits(t *testing.T) {
	t.Parallel()

	sub := &domain.Subscription{
		TenantID:     "t1",
		Plan:         domain.PlanBasic,
		BillingCycle: domain.CycleYearly,
		EndDate:      fixedNow().AddDate(1, 0, 0),
		IsActive:     true,
	}
	// Месячный лимит BASIC — 3 домена, годовой — 4
	q := newQuota(nil, sub, 3, 0, nil)
	q.now = fixedNow

	dec, err := q.Check(context.Background(), "t1", "", ActionCreateDomain)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}
