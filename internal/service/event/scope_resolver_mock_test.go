package event

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
)

var _ scopeResolver = &scopeResolverMock{}

type scopeResolverMock struct {
	ResolveFunc func(ctx context.Context, user domain.User) (*access.Scope, error)

	calls struct {
		Resolve []struct {
			Ctx  context.Context
			User domain.User
		}
	}
	lockResolve sync.RWMutex
}

func (mock *scopeResolverMock) Resolve(ctx context.Context, user domain.User) (*access.Scope, error) {
	if mock.ResolveFunc == nil {
		panic("scopeResolverMock.ResolveFunc: method is nil but scopeResolver.Resolve was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		User domain.User
	}{
		Ctx:  ctx,
		User: user,
	}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, user)
}

// ResolveCalls gets all the calls that were made to Resolve.
func (mock *scopeResolverMock) ResolveCalls() []struct {
	Ctx  context.Context
	User domain.User
} {
	var calls []struct {
		Ctx  context.Context
		User domain.User
	}
	mock.lockResolve.RLock()
	calls = mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
