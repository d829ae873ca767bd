package wordstore

import (
	"context"
	"sync"
)

var _ surfaceRepo = &surfaceRepoMock{}

type surfaceRepoMock struct {
	CreateIfAbsentFunc func(ctx context.Context, lemmaID int64, text string) (bool, error)

	calls struct {
		CreateIfAbsent []struct {
			Ctx     context.Context
			LemmaID int64
			Text    string
		}
	}
	lockCreateIfAbsent sync.RWMutex
}

func (mock *surfaceRepoMock) CreateIfAbsent(ctx context.Context, lemmaID int64, text string) (bool, error) {
	if mock.CreateIfAbsentFunc == nil {
		panic("surfaceRepoMock.CreateIfAbsentFunc: method is nil but surfaceRepo.CreateIfAbsent was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		LemmaID int64
		Text    string
	}{Ctx: ctx, LemmaID: lemmaID, Text: text}
	mock.lockCreateIfAbsent.Lock()
	mock.calls.CreateIfAbsent = append(mock.calls.CreateIfAbsent, callInfo)
	mock.lockCreateIfAbsent.Unlock()
	return mock.CreateIfAbsentFunc(ctx, lemmaID, text)
}

func (mock *surfaceRepoMock) CreateIfAbsentCalls() []struct {
	Ctx     context.Context
	LemmaID int64
	Text    string
} {
	mock.lockCreateIfAbsent.RLock()
	calls := mock.calls.CreateIfAbsent
	mock.lockCreateIfAbsent.RUnlock()
	return calls
}
