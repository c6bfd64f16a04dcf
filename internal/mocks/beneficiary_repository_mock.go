// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/apodaca-kapital/investor-portal/internal/core (interfaces: BeneficiaryRepository)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=beneficiary_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core BeneficiaryRepository
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	model "github.com/apodaca-kapital/investor-portal/internal/domain/model"
	gomock "go.uber.org/mock/gomock"
)

// MockBeneficiaryRepository is a mock of BeneficiaryRepository interface.
type MockBeneficiaryRepository struct {
	ctrl     *gomock.Controller
	recorder *MockBeneficiaryRepositoryMockRecorder
	isgomock struct{}
}

// MockBeneficiaryRepositoryMockRecorder is the mock recorder for MockBeneficiaryRepository.
type MockBeneficiaryRepositoryMockRecorder struct {
	mock *MockBeneficiaryRepository
}

// NewMockBeneficiaryRepository creates a new mock instance.
func NewMockBeneficiaryRepository(ctrl *gomock.Controller) *MockBeneficiaryRepository {
	mock := &MockBeneficiaryRepository{ctrl: ctrl}
	mock.recorder = &MockBeneficiaryRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBeneficiaryRepository) EXPECT() *MockBeneficiaryRepositoryMockRecorder {
	return m.recorder
}

// ClearSlot mocks base method.
func (m *MockBeneficiaryRepository) ClearSlot(ctx context.Context, clientID string, slot int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearSlot", ctx, clientID, slot)
	ret0, _ := ret[0].(error)
	return ret0
}

// ClearSlot indicates an expected call of ClearSlot.
func (mr *MockBeneficiaryRepositoryMockRecorder) ClearSlot(ctx, clientID, slot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearSlot", reflect.TypeOf((*MockBeneficiaryRepository)(nil).ClearSlot), ctx, clientID, slot)
}

// ListByClient mocks base method.
func (m *MockBeneficiaryRepository) ListByClient(ctx context.Context, clientID string) ([]*model.Beneficiary, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByClient", ctx, clientID)
	ret0, _ := ret[0].([]*model.Beneficiary)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByClient indicates an expected call of ListByClient.
func (mr *MockBeneficiaryRepositoryMockRecorder) ListByClient(ctx, clientID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByClient", reflect.TypeOf((*MockBeneficiaryRepository)(nil).ListByClient), ctx, clientID)
}

// UpsertSlot mocks base method.
func (m *MockBeneficiaryRepository) UpsertSlot(ctx context.Context, b *model.Beneficiary) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertSlot", ctx, b)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertSlot indicates an expected call of UpsertSlot.
func (mr *MockBeneficiaryRepositoryMockRecorder) UpsertSlot(ctx, b any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertSlot", reflect.TypeOf((*MockBeneficiaryRepository)(nil).UpsertSlot), ctx, b)
}
