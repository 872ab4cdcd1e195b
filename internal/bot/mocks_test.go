package bot

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/assistant/internal/cognitive"
	"github.com/ruralpay/assistant/internal/models"
)

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockRecognizer) Recognize(ctx context.Context, utterance string) (cognitive.Recognition, error) {
	args := m.Called(ctx, utterance)
	return args.Get(0).(cognitive.Recognition), args.Error(1)
}

type MockQnA struct {
	mock.Mock
}

func (m *MockQnA) Answers(ctx context.Context, question string) ([]cognitive.Answer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cognitive.Answer), args.Error(1)
}

type MockSentimentAnalyzer struct {
	mock.Mock
}

func (m *MockSentimentAnalyzer) Analyze(ctx context.Context, text string) (cognitive.Sentiment, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(cognitive.Sentiment), args.Error(1)
}

// failingStore fails every Save.
type failingStore struct {
	err error
}

func (f failingStore) Load(context.Context, string) (*models.Session, error) {
	return nil, f.err
}

func (f failingStore) Save(context.Context, *models.Session) error { return f.err }

func (f failingStore) Delete(context.Context, string) error { return f.err }

func (f failingStore) Close() error { return nil }
