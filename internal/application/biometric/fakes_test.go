package biometric

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/gymflow-api/internal/application/ports"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDevices struct {
	list []*entity.Device
	err  error
}

func (f *fakeDevices) ListActive(context.Context) ([]*entity.Device, error) {
	return f.list, f.err
}

func devices(serials ...string) *fakeDevices {
	f := &fakeDevices{}
	for i, s := range serials {
		f.list = append(f.list, &entity.Device{ID: int64(i + 1), SerialNo: s, IsActive: true})
	}
	return f
}

type gatewayCall struct {
	Action string
	Cmd    ports.DeviceCommand
	Block  bool
}

// fakeGateway responde según el serial; por defecto éxito.
type fakeGateway struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls []gatewayCall
}

func newFakeGateway(failing ...string) *fakeGateway {
	g := &fakeGateway{fail: map[string]bool{}}
	for _, s := range failing {
		g.fail[s] = true
	}
	return g
}

func (g *fakeGateway) record(action string, cmd ports.DeviceCommand, block bool) ports.DispatchResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{Action: action, Cmd: cmd, Block: block})
	if g.fail[cmd.SerialNumber] {
		return ports.DispatchResult{Success: false, StatusCode: 500, Message: "gateway returned HTTP 500"}
	}
	return ports.DispatchResult{Success: true, StatusCode: 200, Message: "ok", Data: map[string]any{}}
}

func (g *fakeGateway) AddEmployee(_ context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	return g.record(ports.ActionAddEmployee, cmd, false)
}

func (g *fakeGateway) DeleteUser(_ context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	return g.record(ports.ActionDeleteUser, cmd, false)
}

func (g *fakeGateway) EnrollFingerprint(_ context.Context, cmd ports.DeviceCommand) ports.DispatchResult {
	return g.record(ports.ActionEnrollFP, cmd, false)
}

func (g *fakeGateway) SetBlocked(_ context.Context, cmd ports.DeviceCommand, block bool) ports.DispatchResult {
	return g.record(ports.ActionBlock, cmd, block)
}

func (g *fakeGateway) actions() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.calls))
	for _, c := range g.calls {
		out = append(out, c.Action)
	}
	return out
}

type fakeUsers struct {
	mu        sync.Mutex
	users     map[int64]*entity.User
	updateErr error
	getErr    error
	updates   int
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{users: map[int64]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

func (f *fakeUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUsers) ListEnrolled(context.Context) ([]*entity.User, error) { return nil, nil }

func (f *fakeUsers) UpdateSubscriptionStatus(_ context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.SubscriptionStatus = status
	}
	return nil
}

func (f *fakeUsers) UpdateBiometricAccess(_ context.Context, id int64, rec entity.AccessRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("no existe")
	}
	u.AccessRecord = rec
	f.updates++
	return nil
}

func (f *fakeUsers) access(id int64) entity.AccessRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].AccessRecord
}

type fakeSubs struct {
	active bool
	err    error
}

func (f fakeSubs) HasActiveSubscription(context.Context, int64) (bool, error) {
	return f.active, f.err
}
