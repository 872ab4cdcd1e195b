package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/speech"
)

type MockTurnProcessor struct {
	mock.Mock
}

func (m *MockTurnProcessor) ProcessActivity(ctx context.Context, in activity.Activity) ([]activity.Activity, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]activity.Activity), args.Error(1)
}

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, req speech.Request) (speech.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(speech.Result), args.Error(1)
}
