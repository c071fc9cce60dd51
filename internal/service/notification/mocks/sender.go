// Package mocks notification 패키지 인터페이스의 testify/mock 기반 테스트 대역을 제공합니다.
package mocks

import (
	"context"

	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	"github.com/stretchr/testify/mock"
)

// MockSender notification.Sender의 Mock 구현체입니다.
type MockSender struct {
	mock.Mock
}

var _ notification.Sender = (*MockSender)(nil)

// NewMockSender 테스트 종료 시 기대 호출을 자동으로 검증하는 MockSender를 생성합니다.
func NewMockSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSender {
	m := &MockSender{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSender) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockSender) NotifyError(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockSender) SupportsHTML() bool {
	args := m.Called()
	return args.Bool(0)
}
