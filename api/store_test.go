package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/osr-alliance/backend-service-leads/store"
)

// memStore is an in-memory store.Store for handler tests
type memStore struct {
	mu       sync.Mutex
	leads    map[string]store.Lead
	agents   map[string]store.Agent
	comments []store.Comment

	agentInserts int
	pingErr      error
	failWith     error
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		leads:  map[string]store.Lead{},
		agents: map[string]store.Agent{},
	}
}

func (m *memStore) CreateLead(ctx context.Context, lead *store.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}

	lead.LeadID = uuid.NewString()
	if lead.Status == "" {
		lead.Status = store.StatusNew
	}
	if lead.Priority == "" {
		lead.Priority = store.PriorityMedium
	}
	if lead.Tags == nil {
		lead.Tags = pq.StringArray{}
	}
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	m.leads[lead.LeadID] = *lead
	return nil
}

func (m *memStore) GetLead(ctx context.Context, id string) (*store.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return nil, store.ErrLeadNotFound
	}
	return &lead, nil
}

func (m *memStore) ListLeads(ctx context.Context) ([]store.Lead, error) {
	return m.LeadsByStatus(ctx, "")
}

func (m *memStore) UpdateLead(ctx context.Context, id string, patch store.LeadPatch) (*store.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	lead, ok := m.leads[id]
	if !ok {
		return nil, store.ErrLeadNotFound
	}
	if patch.Name != nil {
		lead.Name = *patch.Name
	}
	if patch.Source != nil {
		lead.Source = *patch.Source
	}
	if patch.SalesAgent != nil {
		agent := *patch.SalesAgent
		lead.SalesAgent = &agent
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.Tags != nil {
		lead.Tags = append(pq.StringArray{}, (*patch.Tags)...)
	}
	if patch.TimeToClose != nil {
		lead.TimeToClose = *patch.TimeToClose
	}
	if patch.Priority != nil {
		lead.Priority = *patch.Priority
	}
	lead.UpdatedAt = time.Now()
	m.leads[id] = lead
	return &lead, nil
}

func (m *memStore) DeleteLead(ctx context.Context, id string) (*store.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return nil, store.ErrLeadNotFound
	}
	delete(m.leads, id)
	return &lead, nil
}

func (m *memStore) LeadsByStatus(ctx context.Context, status string) ([]store.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	var leads []store.Lead
	for _, l := range m.leads {
		if status == "" || l.Status == status {
			leads = append(leads, l)
		}
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].Name < leads[j].Name })
	return leads, nil
}

func (m *memStore) CreateAgent(ctx context.Context, agent *store.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.agents {
		if a.Email == agent.Email {
			return store.ErrEmailExists
		}
	}

	m.agentInserts++
	agent.AgentID = uuid.NewString()
	agent.CreatedAt = time.Now()
	m.agents[agent.AgentID] = *agent
	return nil
}

func (m *memStore) GetAgent(ctx context.Context, id string) (*store.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agent, ok := m.agents[id]
	if !ok {
		return nil, store.ErrAgentNotFound
	}
	return &agent, nil
}

func (m *memStore) GetAgentByEmail(ctx context.Context, email string) (*store.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.agents {
		if a.Email == email {
			agent := a
			return &agent, nil
		}
	}
	return nil, store.ErrAgentNotFound
}

func (m *memStore) ListAgents(ctx context.Context) ([]store.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var agents []store.Agent
	for _, a := range m.agents {
		agents = append(agents, a)
	}
	return agents, nil
}

func (m *memStore) CreateComment(ctx context.Context, comment *store.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leads[comment.LeadID]; !ok {
		return store.ErrLeadNotFound
	}
	agent, ok := m.agents[comment.AuthorID]
	if !ok {
		return store.ErrAgentNotFound
	}

	comment.CommentID = uuid.NewString()
	comment.CreatedAt = time.Now()
	comment.AuthorName = agent.Name
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memStore) ListComments(ctx context.Context, leadID string) ([]store.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leads[leadID]; !ok {
		return nil, store.ErrLeadNotFound
	}

	var comments []store.Comment
	for _, c := range m.comments {
		if c.LeadID == leadID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *memStore) Ping(ctx context.Context) error {
	return m.pingErr
}

var errBoom = errors.New("boom")
