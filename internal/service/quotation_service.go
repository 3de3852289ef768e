package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateQuotationRequest struct {
	DirectoryItemID string `json:"directory_item_id"`
	Notes           string `json:"notes"`
}

type ClientResponseRequest struct {
	Response string `json:"response" binding:"required,oneof=approved rejected revise"`
}

type QuotationService interface {
	CreateQuotation(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateQuotationRequest) (*model.Quotation, error)
	SendQuotation(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Quotation, error)
	RecordClientResponse(ctx context.Context, actor workflow.Actor, id uuid.UUID, req ClientResponseRequest) (*model.Quotation, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Quotation, error)
}

type quotationService struct {
	quotations repository.QuotationRepository
	projects   repository.ProjectRepository
	items      repository.DirectoryItemRepository
	sequences  repository.SequenceRepository
	txManager  repository.TransactionManager
	clock      Clock
}

func NewQuotationService(
	quotations repository.QuotationRepository,
	projects repository.ProjectRepository,
	items repository.DirectoryItemRepository,
	sequences repository.SequenceRepository,
	txManager repository.TransactionManager,
	clock Clock,
) QuotationService {
	return &quotationService{
		quotations: quotations,
		projects:   projects,
		items:      items,
		sequences:  sequences,
		txManager:  txManager,
		clock:      clock,
	}
}

func (s *quotationService) CreateQuotation(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateQuotationRequest) (*model.Quotation, error) {
	if err := workflow.Authorize(actor, workflow.ActionSendQuotation); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("project %s not found", projectID)
		}
		return nil, err
	}
	if project.Status == workflow.StatusCancelled {
		return nil, apperror.Conflict("cannot quote a cancelled project")
	}

	var itemID *uuid.UUID
	if req.DirectoryItemID != "" {
		parsed, err := uuid.Parse(req.DirectoryItemID)
		if err != nil {
			return nil, apperror.Validation("invalid directory item id: %v", err)
		}
		item, err := s.items.GetByID(ctx, parsed)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("directory item %s not found", parsed)
			}
			return nil, err
		}
		if item.ProjectID != projectID {
			return nil, apperror.Validation("directory item %s does not belong to project %s", parsed, projectID)
		}
		itemID = &parsed
	}

	var quotation *model.Quotation
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		seq, err := s.sequences.Next(txCtx, repository.ScopedKey(model.SeqQuotation, projectID.String()))
		if err != nil {
			return err
		}
		quotation = &model.Quotation{
			Number:          fmt.Sprintf("Q%d-%d", project.Number, seq),
			ProjectID:       projectID,
			DirectoryItemID: itemID,
			Status:          model.QuotationDraft,
			Notes:           req.Notes,
		}
		if actorID, err := uuid.Parse(actor.ID); err == nil {
			quotation.CreatedByID = &actorID
		}
		return s.quotations.Create(txCtx, quotation)
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

// SendQuotation moves the project to quotation_sent and marks the quotation
// sent. Sending from a state that does not define the action fails with a
// conflict, never a silent no-op.
func (s *quotationService) SendQuotation(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Quotation, error) {
	if err := workflow.Authorize(actor, workflow.ActionSendQuotation); err != nil {
		return nil, err
	}

	quotation, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quotation %s not found", id)
		}
		return nil, err
	}
	if quotation.Status != model.QuotationDraft {
		return nil, apperror.Conflict("quotation %s is already %s", quotation.Number, quotation.Status)
	}

	project, err := s.projects.GetByID(ctx, quotation.ProjectID)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(project.Status, workflow.ActionSendQuotation)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		quotation.Status = model.QuotationSent
		quotation.SentAt = &now
		if err := s.quotations.Update(txCtx, quotation); err != nil {
			return err
		}
		return s.projects.UpdateStatus(txCtx, project.ID, next, workflow.StepLabel(next))
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

// RecordClientResponse stores the client's answer exactly once and moves the
// project accordingly: approved → quotation_approved, revise →
// client_revised, rejected → cancelled.
func (s *quotationService) RecordClientResponse(ctx context.Context, actor workflow.Actor, id uuid.UUID, req ClientResponseRequest) (*model.Quotation, error) {
	if err := workflow.Authorize(actor, workflow.ActionRecordResponse); err != nil {
		return nil, err
	}

	quotation, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quotation %s not found", id)
		}
		return nil, err
	}
	if quotation.Status != model.QuotationSent {
		return nil, apperror.Conflict("quotation %s has not been sent", quotation.Number)
	}
	if quotation.ClientResponse != "" {
		return nil, apperror.Conflict("quotation %s already has a client response", quotation.Number)
	}

	project, err := s.projects.GetByID(ctx, quotation.ProjectID)
	if err != nil {
		return nil, err
	}
	next, err := workflow.ResponseStatus(project.Status, req.Response)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		quotation.ClientResponse = req.Response
		quotation.RespondedAt = &now
		switch req.Response {
		case model.ResponseApproved:
			quotation.Status = model.QuotationApproved
		case model.ResponseRejected:
			quotation.Status = model.QuotationRejected
		}
		if err := s.quotations.Update(txCtx, quotation); err != nil {
			return err
		}
		return s.projects.UpdateStatus(txCtx, project.ID, next, workflow.StepLabel(next))
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

func (s *quotationService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Quotation, error) {
	return s.quotations.ListByProject(ctx, projectID)
}
