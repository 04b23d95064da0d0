package extractor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, req Request) (*Payload, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*Payload)
	return p, args.Error(1)
}
