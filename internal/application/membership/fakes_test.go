package membership

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/gymflow-api/internal/application/dto"
	"github.com/jhoicas/gymflow-api/internal/domain"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
	"github.com/jhoicas/gymflow-api/internal/domain/repository"
)

// ── Repos en memoria ─────────────────────────────────────────────────────────

type memSubs struct {
	mu   sync.Mutex
	byID map[string]*entity.Subscription
}

func newMemSubs(list ...*entity.Subscription) *memSubs {
	m := &memSubs{byID: map[string]*entity.Subscription{}}
	for _, s := range list {
		m.byID[s.ID] = s
	}
	return m
}

func (m *memSubs) Create(_ context.Context, s *entity.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSubs) GetByID(_ context.Context, id string) (*entity.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSubs) Update(_ context.Context, s *entity.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSubs) ListByUser(_ context.Context, userID int64) ([]*entity.Subscription, error) {
	return m.filter(func(s *entity.Subscription) bool { return s.UserID == userID }), nil
}

func (m *memSubs) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.Subscription, error) {
	return m.filter(func(s *entity.Subscription) bool { return status == "" || s.Status == status }), nil
}

func (m *memSubs) HasCurrent(_ context.Context, userID int64, now time.Time) (bool, error) {
	return len(m.filter(func(s *entity.Subscription) bool { return s.UserID == userID && s.IsCurrent(now) })) > 0, nil
}

func (m *memSubs) ListExpiredActive(_ context.Context, now time.Time) ([]*entity.Subscription, error) {
	return m.filter(func(s *entity.Subscription) bool {
		return s.Status == entity.SubStatusActive && !now.Before(s.EndDate)
	}), nil
}

func (m *memSubs) filter(keep func(*entity.Subscription) bool) []*entity.Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Subscription, 0)
	for _, s := range m.byID {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memSubs) get(id string) *entity.Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

func (m *memSubs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memCoupons struct {
	byID map[string]*entity.Coupon
}

func newMemCoupons(list ...*entity.Coupon) *memCoupons {
	m := &memCoupons{byID: map[string]*entity.Coupon{}}
	for _, c := range list {
		m.byID[c.ID] = c
	}
	return m
}

func (m *memCoupons) Create(_ context.Context, c *entity.Coupon) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCoupons) GetByID(_ context.Context, id string) (*entity.Coupon, error) {
	return m.byID[id], nil
}

func (m *memCoupons) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	for _, c := range m.byID {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCoupons) List(context.Context, int, int) ([]*entity.Coupon, error) {
	out := make([]*entity.Coupon, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCoupons) Update(_ context.Context, c *entity.Coupon) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCoupons) IncrementUsage(_ context.Context, id string) error {
	c, ok := m.byID[id]
	if !ok || !c.Applicable(time.Now()) {
		return domain.ErrCouponInvalid
	}
	c.UsedCount++
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	byID map[int64]*entity.User
}

func newMemUsers(list ...*entity.User) *memUsers {
	m := &memUsers{byID: map[int64]*entity.User{}}
	for _, u := range list {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	return nil, nil
}

func (m *memUsers) ListEnrolled(context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range m.byID {
		if u.IsBioMetricActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) UpdateSubscriptionStatus(_ context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SubscriptionStatus = status
	return nil
}

func (m *memUsers) UpdateBiometricAccess(_ context.Context, id int64, rec entity.AccessRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AccessRecord = rec
	return nil
}

func (m *memUsers) status(id int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id].SubscriptionStatus
}

// memTx ejecuta fn con los mismos repos en memoria (sin rollback real).
type memTx struct {
	subs    *memSubs
	coupons *memCoupons
	users   *memUsers
}

func (t *memTx) RunMembership(_ context.Context, fn func(repository.SubscriptionRepository, repository.CouponRepository, repository.UserRepository) error) error {
	return fn(t.subs, t.coupons, t.users)
}

// ── Coordinador falso ────────────────────────────────────────────────────────

type accessCall struct {
	Op     string
	UserID int64
}

type fakeAccess struct {
	mu     sync.Mutex
	calls  []accessCall
	result dto.BiometricResult
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{result: dto.BiometricResult{Success: true, Message: "ok", Results: []dto.DeviceOperationResult{}}}
}

func (f *fakeAccess) record(op string, userID int64) dto.BiometricResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, accessCall{Op: op, UserID: userID})
	res := f.result
	res.Action = op
	return res
}

func (f *fakeAccess) HandleSubscriptionPurchase(_ context.Context, userID int64, _ string) dto.BiometricResult {
	return f.record("purchase", userID)
}

func (f *fakeAccess) Block(_ context.Context, userID int64, _ string) dto.BiometricResult {
	return f.record("block", userID)
}

func (f *fakeAccess) SyncBlockStatus(_ context.Context, userID int64, _ string) dto.BiometricResult {
	return f.record("sync", userID)
}

func (f *fakeAccess) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Op)
	}
	return out
}

type fakeReceipts struct {
	called bool
}

func (f *fakeReceipts) GenerateReceipt(context.Context, *entity.Subscription, *entity.User, string) ([]byte, error) {
	f.called = true
	return []byte("%PDF-fake"), nil
}

type fakeSweepObserver struct {
	expired, synced, failures int
}

func (f *fakeSweepObserver) ObserveSweep(expired, synced, failures int) {
	f.expired += expired
	f.synced += synced
	f.failures += failures
}
