package event

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
)

var _ authorizer = &authorizerMock{}

type authorizerMock struct {
	AuthorizeFunc func(ctx context.Context, c access.Check) error

	calls struct {
		Authorize []struct {
			Ctx context.Context
			C   access.Check
		}
	}
	lockAuthorize sync.RWMutex
}

func (mock *authorizerMock) Authorize(ctx context.Context, c access.Check) error {
	if mock.AuthorizeFunc == nil {
		panic("authorizerMock.AuthorizeFunc: method is nil but authorizer.Authorize was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   access.Check
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockAuthorize.Lock()
	mock.calls.Authorize = append(mock.calls.Authorize, callInfo)
	mock.lockAuthorize.Unlock()
	return mock.AuthorizeFunc(ctx, c)
}

// AuthorizeCalls gets all the calls that were made to Authorize.
func (mock *authorizerMock) AuthorizeCalls() []struct {
	Ctx context.Context
	C   access.Check
} {
	var calls []struct {
		Ctx context.Context
		C   access.Check
	}
	mock.lockAuthorize.RLock()
	calls = mock.calls.Authorize
	mock.lockAuthorize.RUnlock()
	return calls
}
