package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/google/uuid"
)

type particularService struct {
	BaseService
	repo portsrepo.ParticularRepositoryFacade
}

// NewParticularService creates the catalog service.
func NewParticularService(repo portsrepo.ParticularRepositoryFacade) portssvc.ParticularSvcFacade {
	return &particularService{BaseService: newBaseService(), repo: repo}
}

func (s *particularService) CreateParticular(ctx context.Context, req dto.CreateParticularRequest, actor string) (*domain.Particular, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("particular name is required")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("particular type must be %s or %s", domain.Service, domain.Payment))
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationError("unit price cannot be negative")
		}
		if err := validateAmount("unit price", *req.UnitPrice); err != nil {
			return nil, err
		}
	}

	particular := domain.Particular{
		ParticularID: uuid.NewString(),
		Name:         name,
		Type:         req.Type,
		UnitPrice:    req.UnitPrice,
		AuditFields:  domain.NewAuditFields(actor, s.now()),
	}

	if err := s.repo.SaveParticular(ctx, particular); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Duplicate particular", slog.String("name", name), slog.String("type", string(req.Type)))
			return nil, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("a %s named %q already exists", req.Type, name), err)
		}
		s.LogError(ctx, err, "Failed to save particular", slog.String("particular_id", particular.ParticularID))
		return nil, apperrors.NewAppError(500, "failed to create particular", err)
	}

	s.LogInfo(ctx, "Particular created", slog.String("particular_id", particular.ParticularID))
	return &particular, nil
}

func (s *particularService) GetParticularByID(ctx context.Context, particularID string) (*domain.Particular, error) {
	particular, err := s.repo.FindParticularByID(ctx, particularID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("particular %s not found", particularID))
		}
		s.LogError(ctx, err, "Failed to find particular", slog.String("particular_id", particularID))
		return nil, apperrors.NewAppError(500, "failed to get particular", err)
	}
	return particular, nil
}

func (s *particularService) ListParticulars(ctx context.Context, params dto.ListParticularsParams) ([]domain.Particular, error) {
	var filter *domain.ParticularType
	if params.Type != "" {
		t := domain.ParticularType(params.Type)
		if !t.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown particular type %q", params.Type))
		}
		filter = &t
	}

	particulars, err := s.repo.ListParticulars(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list particulars")
		return nil, apperrors.NewAppError(500, "failed to list particulars", err)
	}
	if particulars == nil {
		return []domain.Particular{}, nil
	}
	return particulars, nil
}

// DeleteParticular leaves recorded line items untouched; they carry their own name and kind.
func (s *particularService) DeleteParticular(ctx context.Context, particularID string) error {
	if err := s.repo.DeleteParticular(ctx, particularID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("particular %s not found", particularID))
		}
		s.LogError(ctx, err, "Failed to delete particular", slog.String("particular_id", particularID))
		return apperrors.NewAppError(500, "failed to delete particular", err)
	}
	s.LogInfo(ctx, "Particular deleted", slog.String("particular_id", particularID))
	return nil
}
