package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type ProjectService interface {
	CreateProject(ctx context.Context, actor workflow.Actor, req CreateProjectRequest) (*model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	CancelProject(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error)
	StartSample(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error)
	CompleteSample(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error)
}

type projectService struct {
	projects  repository.ProjectRepository
	clients   repository.ClientRepository
	sequences repository.SequenceRepository
	txManager repository.TransactionManager
}

func NewProjectService(
	projects repository.ProjectRepository,
	clients repository.ClientRepository,
	sequences repository.SequenceRepository,
	txManager repository.TransactionManager,
) ProjectService {
	return &projectService{projects: projects, clients: clients, sequences: sequences, txManager: txManager}
}

func (s *projectService) CreateProject(ctx context.Context, actor workflow.Actor, req CreateProjectRequest) (*model.Project, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apperror.Validation("invalid client id: %v", err)
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("client %s not found", clientID)
		}
		return nil, err
	}
	if !client.IsActive {
		return nil, apperror.Conflict("client %s is inactive", client.ClientCode)
	}

	var project *model.Project
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.sequences.Next(txCtx, model.SeqProject)
		if err != nil {
			return err
		}
		project = &model.Project{
			Number:       number,
			ClientID:     clientID,
			Title:        req.Title,
			Description:  req.Description,
			Status:       workflow.StatusDraftDirectory,
			WorkflowStep: workflow.StepLabel(workflow.StatusDraftDirectory),
		}
		if ownerID, err := uuid.Parse(actor.ID); err == nil {
			project.OwnerID = &ownerID
		}
		return s.projects.Create(txCtx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("project %s not found", id)
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	return s.projects.List(ctx, page, limit)
}

// transition applies one workflow action to a project after consulting the
// policy table and the transition graph.
func (s *projectService) transition(ctx context.Context, actor workflow.Actor, id uuid.UUID, action workflow.Action) (*model.Project, error) {
	if err := workflow.Authorize(actor, action); err != nil {
		return nil, err
	}
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(project.Status, action)
	if err != nil {
		return nil, err
	}
	if err := s.projects.UpdateStatus(ctx, id, next, workflow.StepLabel(next)); err != nil {
		return nil, err
	}
	project.Status = next
	project.WorkflowStep = workflow.StepLabel(next)
	return project, nil
}

func (s *projectService) CancelProject(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error) {
	return s.transition(ctx, actor, id, workflow.ActionCancelProject)
}

func (s *projectService) StartSample(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error) {
	return s.transition(ctx, actor, id, workflow.ActionStartSample)
}

func (s *projectService) CompleteSample(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*model.Project, error) {
	return s.transition(ctx, actor, id, workflow.ActionCompleteSample)
}
