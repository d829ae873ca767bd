package wordstore

import (
	"context"
	"sync"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

var _ wordCache = &wordCacheMock{}

type wordCacheMock struct {
	GetLemmaFunc           func(ctx context.Context, text string) (*domain.LemmaEntry, error)
	GetSurfaceFunc         func(ctx context.Context, surface string) (*domain.SurfaceEntry, error)
	SetLemmaFunc           func(ctx context.Context, e domain.LemmaEntry) error
	SetSurfaceIfAbsentFunc func(ctx context.Context, e domain.SurfaceEntry) (bool, error)

	calls struct {
		GetLemma []struct {
			Ctx  context.Context
			Text string
		}
		GetSurface []struct {
			Ctx     context.Context
			Surface string
		}
		SetLemma []struct {
			Ctx context.Context
			E   domain.LemmaEntry
		}
		SetSurfaceIfAbsent []struct {
			Ctx context.Context
			E   domain.SurfaceEntry
		}
	}
	lockGetLemma           sync.RWMutex
	lockGetSurface         sync.RWMutex
	lockSetLemma           sync.RWMutex
	lockSetSurfaceIfAbsent sync.RWMutex
}

func (mock *wordCacheMock) GetLemma(ctx context.Context, text string) (*domain.LemmaEntry, error) {
	if mock.GetLemmaFunc == nil {
		panic("wordCacheMock.GetLemmaFunc: method is nil but wordCache.GetLemma was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockGetLemma.Lock()
	mock.calls.GetLemma = append(mock.calls.GetLemma, callInfo)
	mock.lockGetLemma.Unlock()
	return mock.GetLemmaFunc(ctx, text)
}

func (mock *wordCacheMock) GetLemmaCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockGetLemma.RLock()
	calls := mock.calls.GetLemma
	mock.lockGetLemma.RUnlock()
	return calls
}

func (mock *wordCacheMock) GetSurface(ctx context.Context, surface string) (*domain.SurfaceEntry, error) {
	if mock.GetSurfaceFunc == nil {
		panic("wordCacheMock.GetSurfaceFunc: method is nil but wordCache.GetSurface was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Surface string
	}{Ctx: ctx, Surface: surface}
	mock.lockGetSurface.Lock()
	mock.calls.GetSurface = append(mock.calls.GetSurface, callInfo)
	mock.lockGetSurface.Unlock()
	return mock.GetSurfaceFunc(ctx, surface)
}

func (mock *wordCacheMock) GetSurfaceCalls() []struct {
	Ctx     context.Context
	Surface string
} {
	mock.lockGetSurface.RLock()
	calls := mock.calls.GetSurface
	mock.lockGetSurface.RUnlock()
	return calls
}

func (mock *wordCacheMock) SetLemma(ctx context.Context, e domain.LemmaEntry) error {
	if mock.SetLemmaFunc == nil {
		panic("wordCacheMock.SetLemmaFunc: method is nil but wordCache.SetLemma was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.LemmaEntry
	}{Ctx: ctx, E: e}
	mock.lockSetLemma.Lock()
	mock.calls.SetLemma = append(mock.calls.SetLemma, callInfo)
	mock.lockSetLemma.Unlock()
	return mock.SetLemmaFunc(ctx, e)
}

func (mock *wordCacheMock) SetLemmaCalls() []struct {
	Ctx context.Context
	E   domain.LemmaEntry
} {
	mock.lockSetLemma.RLock()
	calls := mock.calls.SetLemma
	mock.lockSetLemma.RUnlock()
	return calls
}

func (mock *wordCacheMock) SetSurfaceIfAbsent(ctx context.Context, e domain.SurfaceEntry) (bool, error) {
	if mock.SetSurfaceIfAbsentFunc == nil {
		panic("wordCacheMock.SetSurfaceIfAbsentFunc: method is nil but wordCache.SetSurfaceIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.SurfaceEntry
	}{Ctx: ctx, E: e}
	mock.lockSetSurfaceIfAbsent.Lock()
	mock.calls.SetSurfaceIfAbsent = append(mock.calls.SetSurfaceIfAbsent, callInfo)
	mock.lockSetSurfaceIfAbsent.Unlock()
	return mock.SetSurfaceIfAbsentFunc(ctx, e)
}

func (mock *wordCacheMock) SetSurfaceIfAbsentCalls() []struct {
	Ctx context.Context
	E   domain.SurfaceEntry
} {
	mock.lockSetSurfaceIfAbsent.RLock()
	calls := mock.calls.SetSurfaceIfAbsent
	mock.lockSetSurfaceIfAbsent.RUnlock()
	return calls
}
