package kafka

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventfeed-backend/internal/service/ingest"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	RecordFunc func(ctx context.Context, input ingest.RecordInput) error

	calls struct {
		Record []struct {
			Ctx   context.Context
			Input ingest.RecordInput
		}
	}
	lockRecord sync.RWMutex
}

func (mock *recorderMock) Record(ctx context.Context, input ingest.RecordInput) error {
	if mock.RecordFunc == nil {
		panic("recorderMock.RecordFunc: method is nil but recorder.Record was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ingest.RecordInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, input)
}

// RecordCalls gets all the calls that were made to Record.
func (mock *recorderMock) RecordCalls() []struct {
	Ctx   context.Context
	Input ingest.RecordInput
} {
	var calls []struct {
		Ctx   context.Context
		Input ingest.RecordInput
	}
	mock.lockRecord.RLock()
	calls = mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
