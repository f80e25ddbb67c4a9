package event

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	FindByRefFunc func(ctx context.Context, teamID uuid.UUID, ref domain.DocumentRef) (*domain.Document, error)

	calls struct {
		FindByRef []struct {
			Ctx    context.Context
			TeamID uuid.UUID
			Ref    domain.DocumentRef
		}
	}
	lockFindByRef sync.RWMutex
}

func (mock *documentRepoMock) FindByRef(ctx context.Context, teamID uuid.UUID, ref domain.DocumentRef) (*domain.Document, error) {
	if mock.FindByRefFunc == nil {
		panic("documentRepoMock.FindByRefFunc: method is nil but documentRepo.FindByRef was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TeamID uuid.UUID
		Ref    domain.DocumentRef
	}{
		Ctx:    ctx,
		TeamID: teamID,
		Ref:    ref,
	}
	mock.lockFindByRef.Lock()
	mock.calls.FindByRef = append(mock.calls.FindByRef, callInfo)
	mock.lockFindByRef.Unlock()
	return mock.FindByRefFunc(ctx, teamID, ref)
}

// FindByRefCalls gets all the calls that were made to FindByRef.
func (mock *documentRepoMock) FindByRefCalls() []struct {
	Ctx    context.Context
	TeamID uuid.UUID
	Ref    domain.DocumentRef
} {
	var calls []struct {
		Ctx    context.Context
		TeamID uuid.UUID
		Ref    domain.DocumentRef
	}
	mock.lockFindByRef.RLock()
	calls = mock.calls.FindByRef
	mock.lockFindByRef.RUnlock()
	return calls
}
