// Package mocks provides mock implementations for testing the portal's
// repository interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the record-store interfaces in internal/core. Hand-written doubles for the
// auth ports live in mocks/auth.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockClientRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(client, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=client_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core ClientRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=account_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core AccountRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=movement_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core MovementRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=beneficiary_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core BeneficiaryRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=document_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core DocumentRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=request_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core FundsRequestRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_repository_mock.go github.com/apodaca-kapital/investor-portal/internal/core ProfileRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_provisioner_mock.go github.com/apodaca-kapital/investor-portal/internal/ports UserProvisioner
