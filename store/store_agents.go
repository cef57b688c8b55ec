package store

import (
	"context"
	"errors"

	storage "github.com/osr-alliance/backend-service-leads"
)

// CreateAgent inserts the agent unless its email is taken. The lookup only spares the insert;
// the unique index is what actually holds when two requests race.
func (s *store) CreateAgent(ctx context.Context, agent *Agent) error {
	_, err := s.GetAgentByEmail(ctx, agent.Email)
	switch {
	case err == nil:
		return ErrEmailExists
	case !errors.Is(err, ErrAgentNotFound):
		return err
	}

	err = s.store.Insert(ctx, agent)
	if errors.Is(err, storage.ErrDuplicate) {
		return ErrEmailExists
	}
	return err
}

func (s *store) GetAgent(ctx context.Context, id string) (*Agent, error) {
	a := &Agent{
		AgentID: normalizeID(id),
	}
	if err := s.store.Select(ctx, a, AgentsGetByID); err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}
	return a, nil
}

func (s *store) GetAgentByEmail(ctx context.Context, email string) (*Agent, error) {
	a := &Agent{
		Email: email,
	}
	if err := s.store.Select(ctx, a, AgentsGetByEmail); err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}
	return a, nil
}

func (s *store) ListAgents(ctx context.Context) ([]Agent, error) {
	agents := []Agent{}
	err := s.store.SelectAll(ctx, &Agent{}, &agents, AgentsGetAll, nil)
	return agents, err
}
