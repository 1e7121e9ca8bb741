package usecase

import (
	"context"
	"sync"

	"skill-community/internal/domain/filter"
	"skill-community/internal/domain/user"
	"skill-community/internal/infrastructure/backend"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	me         user.User
	meErr      error
	users      []user.User
	usersErr   error
	filtered   []user.User
	filterErr  error
	lastFilter filter.State

	pending       []user.User
	pendingErr    error
	connections   []user.User
	connectionErr error

	connectRes backend.ConnectResult
	connectErr error
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) GetUser(context.Context, string, user.ID) (user.User, error) {
	f.record("GetUser")
	return f.me, f.meErr
}

func (f *fakeBackend) ListUsers(context.Context, string) ([]user.User, error) {
	f.record("ListUsers")
	return f.users, f.usersErr
}

func (f *fakeBackend) FilterUsers(_ context.Context, _ string, fs filter.State) ([]user.User, error) {
	f.record("FilterUsers")
	f.mu.Lock()
	f.lastFilter = fs
	f.mu.Unlock()
	return f.filtered, f.filterErr
}

func (f *fakeBackend) ListPending(context.Context, string, user.ID) ([]user.User, error) {
	f.record("ListPending")
	return f.pending, f.pendingErr
}

func (f *fakeBackend) ListConnections(context.Context, string, user.ID) ([]user.User, error) {
	f.record("ListConnections")
	return f.connections, f.connectionErr
}

func (f *fakeBackend) Connect(context.Context, string, user.ID, user.ID) (backend.ConnectResult, error) {
	f.record("Connect")
	return f.connectRes, f.connectErr
}

type fakeNotifier struct {
	mu    sync.Mutex
	pairs [][2]user.ID
}

func (n *fakeNotifier) NotifyRelationshipChanged(a, b user.ID) {
	n.mu.Lock()
	n.pairs = append(n.pairs, [2]user.ID{a, b})
	n.mu.Unlock()
}
