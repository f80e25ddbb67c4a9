package event

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	ListFunc func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)

	calls struct {
		List []struct {
			Ctx context.Context
			F   domain.EventFilter
		}
	}
	lockList sync.RWMutex
}

func (mock *eventRepoMock) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	if mock.ListFunc == nil {
		panic("eventRepoMock.ListFunc: method is nil but eventRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.EventFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

// ListCalls gets all the calls that were made to List.
func (mock *eventRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.EventFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.EventFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
