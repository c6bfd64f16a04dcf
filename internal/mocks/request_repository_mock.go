// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/apodaca-kapital/investor-portal/internal/core (interfaces: FundsRequestRepository)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=request_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core FundsRequestRepository
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	model "github.com/apodaca-kapital/investor-portal/internal/domain/model"
	gomock "go.uber.org/mock/gomock"
)

// MockFundsRequestRepository is a mock of FundsRequestRepository interface.
type MockFundsRequestRepository struct {
	ctrl     *gomock.Controller
	recorder *MockFundsRequestRepositoryMockRecorder
	isgomock struct{}
}

// MockFundsRequestRepositoryMockRecorder is the mock recorder for MockFundsRequestRepository.
type MockFundsRequestRepositoryMockRecorder struct {
	mock *MockFundsRequestRepository
}

// NewMockFundsRequestRepository creates a new mock instance.
func NewMockFundsRequestRepository(ctrl *gomock.Controller) *MockFundsRequestRepository {
	mock := &MockFundsRequestRepository{ctrl: ctrl}
	mock.recorder = &MockFundsRequestRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockFundsRequestRepository) EXPECT() *MockFundsRequestRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockFundsRequestRepository) Create(ctx context.Context, fr *model.FundsRequest) (*model.FundsRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, fr)
	ret0, _ := ret[0].(*model.FundsRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockFundsRequestRepositoryMockRecorder) Create(ctx, fr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockFundsRequestRepository)(nil).Create), ctx, fr)
}

// GetByID mocks base method.
func (m *MockFundsRequestRepository) GetByID(ctx context.Context, id string) (*model.FundsRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*model.FundsRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockFundsRequestRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockFundsRequestRepository)(nil).GetByID), ctx, id)
}

// List mocks base method.
func (m *MockFundsRequestRepository) List(ctx context.Context, limit, offset int) ([]*model.FundsRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, limit, offset)
	ret0, _ := ret[0].([]*model.FundsRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockFundsRequestRepositoryMockRecorder) List(ctx, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockFundsRequestRepository)(nil).List), ctx, limit, offset)
}

// ListByClient mocks base method.
func (m *MockFundsRequestRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.FundsRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByClient", ctx, clientID, limit, offset)
	ret0, _ := ret[0].([]*model.FundsRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByClient indicates an expected call of ListByClient.
func (mr *MockFundsRequestRepositoryMockRecorder) ListByClient(ctx, clientID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByClient", reflect.TypeOf((*MockFundsRequestRepository)(nil).ListByClient), ctx, clientID, limit, offset)
}

// Update mocks base method.
func (m *MockFundsRequestRepository) Update(ctx context.Context, id string, req model.UpdateRequestRequest) (*model.FundsRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, req)
	ret0, _ := ret[0].(*model.FundsRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockFundsRequestRepositoryMockRecorder) Update(ctx, id, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockFundsRequestRepository)(nil).Update), ctx, id, req)
}
