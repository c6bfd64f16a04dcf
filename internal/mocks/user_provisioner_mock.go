// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/apodaca-kapital/investor-portal/internal/ports (interfaces: UserProvisioner)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=user_provisioner_mock.go github.com/apodaca-kapital/investor-portal/internal/ports UserProvisioner
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	auth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	gomock "go.uber.org/mock/gomock"
)

// MockUserProvisioner is a mock of UserProvisioner interface.
type MockUserProvisioner struct {
	ctrl     *gomock.Controller
	recorder *MockUserProvisionerMockRecorder
	isgomock struct{}
}

// MockUserProvisionerMockRecorder is the mock recorder for MockUserProvisioner.
type MockUserProvisionerMockRecorder struct {
	mock *MockUserProvisioner
}

// NewMockUserProvisioner creates a new mock instance.
func NewMockUserProvisioner(ctrl *gomock.Controller) *MockUserProvisioner {
	mock := &MockUserProvisioner{ctrl: ctrl}
	mock.recorder = &MockUserProvisionerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserProvisioner) EXPECT() *MockUserProvisionerMockRecorder {
	return m.recorder
}

// CreateUser mocks base method.
func (m *MockUserProvisioner) CreateUser(ctx context.Context, email, password string) (auth.Identity, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateUser", ctx, email, password)
	ret0, _ := ret[0].(auth.Identity)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateUser indicates an expected call of CreateUser.
func (mr *MockUserProvisionerMockRecorder) CreateUser(ctx, email, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateUser", reflect.TypeOf((*MockUserProvisioner)(nil).CreateUser), ctx, email, password)
}
