package ingest

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	CreateFunc func(ctx context.Context, e domain.Event) error

	calls struct {
		Create []struct {
			Ctx context.Context
			E   domain.Event
		}
	}
	lockCreate sync.RWMutex
}

func (mock *eventRepoMock) Create(ctx context.Context, e domain.Event) error {
	if mock.CreateFunc == nil {
		panic("eventRepoMock.CreateFunc: method is nil but eventRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Event
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *eventRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   domain.Event
} {
	var calls []struct {
		Ctx context.Context
		E   domain.Event
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
