package store

import (
	"context"

	"github.com/lib/pq"
)

func (s *store) CreateLead(ctx context.Context, lead *Lead) error {
	if lead.Status == "" {
		lead.Status = StatusNew
	}
	if lead.Priority == "" {
		lead.Priority = PriorityMedium
	}
	if lead.Tags == nil {
		lead.Tags = pq.StringArray{}
	}
	lead.SalesAgent = normalizeIDPtr(lead.SalesAgent)
	return s.store.Insert(ctx, lead)
}

func (s *store) GetLead(ctx context.Context, id string) (*Lead, error) {
	l := &Lead{
		LeadID: normalizeID(id),
	}
	if err := s.store.Select(ctx, l, LeadsGetByID); err != nil {
		return nil, notFound(err, ErrLeadNotFound)
	}
	return l, nil
}

func (s *store) ListLeads(ctx context.Context) ([]Lead, error) {
	leads := []Lead{}
	err := s.store.SelectAll(ctx, &Lead{}, &leads, LeadsGetAll, nil)
	return leads, err
}

func (s *store) LeadsByStatus(ctx context.Context, status string) ([]Lead, error) {
	l := &Lead{
		Status: status,
	}

	leads := []Lead{}
	err := s.store.SelectAll(ctx, l, &leads, LeadsGetByStatus, nil)
	return leads, err
}

// UpdateLead merges patch into the stored lead. The row is locked for the read-modify-write.
func (s *store) UpdateLead(ctx context.Context, id string, patch LeadPatch) (*Lead, error) {
	tx, err := s.store.TXBegin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.TXRollback()

	lead := &Lead{
		LeadID: normalizeID(id),
	}
	if err := tx.TxSelect(ctx, lead, LeadsGetByIDForUpdate); err != nil {
		return nil, notFound(err, ErrLeadNotFound)
	}

	patch.apply(lead)
	lead.SalesAgent = normalizeIDPtr(lead.SalesAgent)
	if lead.Tags == nil {
		lead.Tags = pq.StringArray{}
	}

	if err := tx.TXUpdate(ctx, lead); err != nil {
		return nil, notFound(err, ErrLeadNotFound)
	}

	if err := tx.TXEnd(ctx); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *store) DeleteLead(ctx context.Context, id string) (*Lead, error) {
	l := &Lead{
		LeadID: normalizeID(id),
	}
	if err := s.store.Delete(ctx, l); err != nil {
		return nil, notFound(err, ErrLeadNotFound)
	}
	return l, nil
}
