package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

var _ statsQuerier = &statsQuerierMock{}

type statsQuerierMock struct {
	GetFunc func(ctx context.Context, userID int64, days int) (*domain.UserStats, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID int64
			Days   int
		}
	}
	lockGet sync.RWMutex
}

func (mock *statsQuerierMock) Get(ctx context.Context, userID int64, days int) (*domain.UserStats, error) {
	if mock.GetFunc == nil {
		panic("statsQuerierMock.GetFunc: method is nil but statsQuerier.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID int64
		Days   int
	}{Ctx: ctx, UserID: userID, Days: days}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, days)
}

func (mock *statsQuerierMock) GetCalls() []struct {
	Ctx    context.Context
	UserID int64
	Days   int
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
