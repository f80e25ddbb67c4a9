package access

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	CollectionIDsFunc func(ctx context.Context, userID uuid.UUID, teamID uuid.UUID, mode domain.MembershipMode) ([]uuid.UUID, error)

	calls struct {
		CollectionIDs []struct {
			Ctx    context.Context
			UserID uuid.UUID
			TeamID uuid.UUID
			Mode   domain.MembershipMode
		}
	}
	lockCollectionIDs sync.RWMutex
}

func (mock *membershipRepoMock) CollectionIDs(ctx context.Context, userID uuid.UUID, teamID uuid.UUID, mode domain.MembershipMode) ([]uuid.UUID, error) {
	if mock.CollectionIDsFunc == nil {
		panic("membershipRepoMock.CollectionIDsFunc: method is nil but membershipRepo.CollectionIDs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		TeamID uuid.UUID
		Mode   domain.MembershipMode
	}{Ctx: ctx, UserID: userID, TeamID: teamID, Mode: mode}
	mock.lockCollectionIDs.Lock()
	mock.calls.CollectionIDs = append(mock.calls.CollectionIDs, callInfo)
	mock.lockCollectionIDs.Unlock()
	return mock.CollectionIDsFunc(ctx, userID, teamID, mode)
}

func (mock *membershipRepoMock) CollectionIDsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	TeamID uuid.UUID
	Mode   domain.MembershipMode
} {
	mock.lockCollectionIDs.RLock()
	calls := mock.calls.CollectionIDs
	mock.lockCollectionIDs.RUnlock()
	return calls
}
