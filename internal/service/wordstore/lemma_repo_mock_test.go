package wordstore

import (
	"context"
	"sync"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

var _ lemmaRepo = &lemmaRepoMock{}

type lemmaRepoMock struct {
	CreateFunc    func(ctx context.Context, text string, category domain.Category) (*domain.Lemma, error)
	GetByTextFunc func(ctx context.Context, text string) (*domain.Lemma, error)

	calls struct {
		Create []struct {
			Ctx      context.Context
			Text     string
			Category domain.Category
		}
		GetByText []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockCreate    sync.RWMutex
	lockGetByText sync.RWMutex
}

func (mock *lemmaRepoMock) Create(ctx context.Context, text string, category domain.Category) (*domain.Lemma, error) {
	if mock.CreateFunc == nil {
		panic("lemmaRepoMock.CreateFunc: method is nil but lemmaRepo.Create was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Text     string
		Category domain.Category
	}{Ctx: ctx, Text: text, Category: category}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, text, category)
}

func (mock *lemmaRepoMock) CreateCalls() []struct {
	Ctx      context.Context
	Text     string
	Category domain.Category
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *lemmaRepoMock) GetByText(ctx context.Context, text string) (*domain.Lemma, error) {
	if mock.GetByTextFunc == nil {
		panic("lemmaRepoMock.GetByTextFunc: method is nil but lemmaRepo.GetByText was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockGetByText.Lock()
	mock.calls.GetByText = append(mock.calls.GetByText, callInfo)
	mock.lockGetByText.Unlock()
	return mock.GetByTextFunc(ctx, text)
}

func (mock *lemmaRepoMock) GetByTextCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockGetByText.RLock()
	calls := mock.calls.GetByText
	mock.lockGetByText.RUnlock()
	return calls
}
