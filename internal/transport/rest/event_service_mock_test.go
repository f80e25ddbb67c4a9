package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/event"
)

var _ eventService = &eventServiceMock{}

type eventServiceMock struct {
	ListFunc func(ctx context.Context, in event.ListInput) (*domain.EventPage, error)

	calls struct {
		List []struct {
			Ctx context.Context
			In  event.ListInput
		}
	}
	lockList sync.RWMutex
}

func (mock *eventServiceMock) List(ctx context.Context, in event.ListInput) (*domain.EventPage, error) {
	if mock.ListFunc == nil {
		panic("eventServiceMock.ListFunc: method is nil but eventService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  event.ListInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, in)
}

// ListCalls gets all the calls that were made to List.
func (mock *eventServiceMock) ListCalls() []struct {
	Ctx context.Context
	In  event.ListInput
} {
	var calls []struct {
		Ctx context.Context
		In  event.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
