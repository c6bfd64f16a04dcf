// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/apodaca-kapital/investor-portal/internal/core (interfaces: MovementRepository)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=movement_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core MovementRepository
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	model "github.com/apodaca-kapital/investor-portal/internal/domain/model"
	gomock "go.uber.org/mock/gomock"
)

// MockMovementRepository is a mock of MovementRepository interface.
type MockMovementRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMovementRepositoryMockRecorder
	isgomock struct{}
}

// MockMovementRepositoryMockRecorder is the mock recorder for MockMovementRepository.
type MockMovementRepositoryMockRecorder struct {
	mock *MockMovementRepository
}

// NewMockMovementRepository creates a new mock instance.
func NewMockMovementRepository(ctrl *gomock.Controller) *MockMovementRepository {
	mock := &MockMovementRepository{ctrl: ctrl}
	mock.recorder = &MockMovementRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMovementRepository) EXPECT() *MockMovementRepositoryMockRecorder {
	return m.recorder
}

// BulkInsert mocks base method.
func (m *MockMovementRepository) BulkInsert(ctx context.Context, movements []*model.Movement) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkInsert", ctx, movements)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BulkInsert indicates an expected call of BulkInsert.
func (mr *MockMovementRepositoryMockRecorder) BulkInsert(ctx, movements any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkInsert", reflect.TypeOf((*MockMovementRepository)(nil).BulkInsert), ctx, movements)
}

// Create mocks base method.
func (m *MockMovementRepository) Create(ctx context.Context, req *model.CreateMovementRequest) (*model.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, req)
	ret0, _ := ret[0].(*model.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockMovementRepositoryMockRecorder) Create(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockMovementRepository)(nil).Create), ctx, req)
}

// List mocks base method.
func (m *MockMovementRepository) List(ctx context.Context, opts model.MovementsListOptions) ([]*model.Movement, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, opts)
	ret0, _ := ret[0].([]*model.Movement)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockMovementRepositoryMockRecorder) List(ctx, opts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockMovementRepository)(nil).List), ctx, opts)
}
