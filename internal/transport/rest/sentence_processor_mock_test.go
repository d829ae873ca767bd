package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/lexitrack/internal/service/pipeline"
)

var _ sentenceProcessor = &sentenceProcessorMock{}

type sentenceProcessorMock struct {
	ProcessFunc func(ctx context.Context, input pipeline.ProcessInput) (*pipeline.ProcessResult, error)

	calls struct {
		Process []struct {
			Ctx   context.Context
			Input pipeline.ProcessInput
		}
	}
	lockProcess sync.RWMutex
}

func (mock *sentenceProcessorMock) Process(ctx context.Context, input pipeline.ProcessInput) (*pipeline.ProcessResult, error) {
	if mock.ProcessFunc == nil {
		panic("sentenceProcessorMock.ProcessFunc: method is nil but sentenceProcessor.Process was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input pipeline.ProcessInput
	}{Ctx: ctx, Input: input}
	mock.lockProcess.Lock()
	mock.calls.Process = append(mock.calls.Process, callInfo)
	mock.lockProcess.Unlock()
	return mock.ProcessFunc(ctx, input)
}

func (mock *sentenceProcessorMock) ProcessCalls() []struct {
	Ctx   context.Context
	Input pipeline.ProcessInput
} {
	mock.lockProcess.RLock()
	calls := mock.calls.Process
	mock.lockProcess.RUnlock()
	return calls
}
