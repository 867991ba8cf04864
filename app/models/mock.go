package models

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ContractTestGen/app/tools"
)

var _ Interface = &MockModel{}

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Think(ctx context.Context, settings Settings, messages []Message, runID string) (string, error) {
	args := m.Called(ctx, settings, messages, runID)
	return args.String(0), args.Error(1)
}

func (m *MockModel) Process(ctx context.Context, settings Settings, messages []Message, toolkit map[string]tools.Tool,
	runID string) (string, error) {
	args := m.Called(ctx, settings, messages, toolkit, runID)
	return args.String(0), args.Error(1)
}
