package store

import (
	"context"
)

// CreateComment attaches the comment to its lead. The lead and the author are checked in the same
// transaction as the insert so the comment always points at rows that existed when it was written.
func (s *store) CreateComment(ctx context.Context, comment *Comment) error {
	tx, err := s.store.TXBegin(ctx)
	if err != nil {
		return err
	}
	defer tx.TXRollback()

	lead := &Lead{
		LeadID: normalizeID(comment.LeadID),
	}
	if err := tx.TxSelect(ctx, lead, LeadsGetByID); err != nil {
		return notFound(err, ErrLeadNotFound)
	}

	author := &Agent{
		AgentID: normalizeID(comment.AuthorID),
	}
	if err := tx.TxSelect(ctx, author, AgentsGetByID); err != nil {
		return notFound(err, ErrAgentNotFound)
	}

	comment.LeadID = lead.LeadID
	comment.AuthorID = author.AgentID
	if err := tx.TXInsert(ctx, comment); err != nil {
		return err
	}

	if err := tx.TXEnd(ctx); err != nil {
		return err
	}
	comment.AuthorName = author.Name
	return nil
}

// ListComments returns the lead's comments oldest first, each with its author's name
func (s *store) ListComments(ctx context.Context, leadID string) ([]Comment, error) {
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}

	c := &Comment{
		LeadID: normalizeID(leadID),
	}

	comments := []Comment{}
	err := s.store.SelectAll(ctx, c, &comments, CommentsGetByLeadID, nil)
	return comments, err
}
