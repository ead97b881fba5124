package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/core/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParticularService_CreateParticular(t *testing.T) {
	ctx := context.Background()
	repo := new(MockParticularRepository)
	svc := services.NewParticularService(repo)

	repo.On("SaveParticular", ctx, mock.MatchedBy(func(p domain.Particular) bool {
		return p.Name == "Printing" && p.Type == domain.Service && p.ParticularID != ""
	})).Return(nil).Once()

	p, err := svc.CreateParticular(ctx, dto.CreateParticularRequest{Name: " Printing ", Type: domain.Service}, "alice")

	require.NoError(t, err)
	assert.Equal(t, "Printing", p.Name)
	assert.Nil(t, p.UnitPrice)
	repo.AssertExpectations(t)
}

func TestParticularService_CreateParticular_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	subCent := decimal.RequireFromString("12.345")
	tooLarge := decimal.New(1, 8)
	tests := []struct {
		name string
		req  dto.CreateParticularRequest
	}{
		{name: "blank name", req: dto.CreateParticularRequest{Name: "  ", Type: domain.Service}},
		{name: "unknown type", req: dto.CreateParticularRequest{Name: "Binding", Type: "Discount"}},
		{name: "negative default price", req: dto.CreateParticularRequest{Name: "Binding", Type: domain.Service, UnitPrice: &negative}},
		{name: "sub-cent default price", req: dto.CreateParticularRequest{Name: "Binding", Type: domain.Service, UnitPrice: &subCent}},
		{name: "default price too large", req: dto.CreateParticularRequest{Name: "Binding", Type: domain.Service, UnitPrice: &tooLarge}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockParticularRepository)
			svc := services.NewParticularService(repo)

			_, err := svc.CreateParticular(context.Background(), tt.req, "alice")

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			repo.AssertNotCalled(t, "SaveParticular", mock.Anything, mock.Anything)
		})
	}
}

func TestParticularService_CreateParticular_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockParticularRepository)
	svc := services.NewParticularService(repo)
	repo.On("SaveParticular", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateParticular(ctx, dto.CreateParticularRequest{Name: "Payment", Type: domain.Payment}, "alice")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, http.StatusConflict, apperrors.StatusCode(err))
}

func TestParticularService_ListParticulars_ByType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockParticularRepository)
	svc := services.NewParticularService(repo)

	repo.On("ListParticulars", ctx, mock.MatchedBy(func(pt *domain.ParticularType) bool {
		return pt != nil && *pt == domain.Payment
	})).Return([]domain.Particular{payment}, nil).Once()

	list, err := svc.ListParticulars(ctx, dto.ListParticularsParams{Type: "Payment"})

	require.NoError(t, err)
	assert.Equal(t, []domain.Particular{payment}, list)
	repo.AssertExpectations(t)
}

func TestParticularService_DeleteParticular_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockParticularRepository)
	svc := services.NewParticularService(repo)
	repo.On("DeleteParticular", ctx, "missing").Return(apperrors.ErrNotFound).Once()

	err := svc.DeleteParticular(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}
