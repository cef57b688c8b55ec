package store

import storage "github.com/osr-alliance/backend-service-leads"

// define all the query names we will use
const (
	/*
		It's standard to have the query used to fetch by
		the primary key be called {tableName}GetByID
	*/
	LeadsGetByID          = "LeadsGetByID"
	LeadsGetByIDForUpdate = "LeadsGetByIDForUpdate"
	LeadsGetAll           = "LeadsGetAll"
	LeadsGetByStatus      = "LeadsGetByStatus"

	AgentsGetByID    = "AgentsGetByID"
	AgentsGetByEmail = "AgentsGetByEmail"
	AgentsGetAll     = "AgentsGetAll"

	CommentsGetByID     = "CommentsGetByID"
	CommentsGetByLeadID = "CommentsGetByLeadID"
)

const (
	DefaultTTL = 60 * 10 // 10 minutes
)

func tables() []*storage.Table {
	return []*storage.Table{
		{
			Struct:           Lead{},
			PrimaryQueryName: LeadsGetByID,
			PrimaryKeyField:  "lead_id",
			InsertQuery:      leadsInsert,
			UpdateQuery:      leadsUpdate,
			DeleteQuery:      leadsDelete,
			Queries: []*storage.Query{
				leadsGetByID(),
				leadsGetByIDForUpdate(),
				leadsGetAll(),
				leadsGetByStatus(),
			},
		},
		{
			Struct:           Agent{},
			PrimaryQueryName: AgentsGetByID,
			PrimaryKeyField:  "agent_id",
			InsertQuery:      agentsInsert,
			Queries: []*storage.Query{
				agentsGetByID(),
				agentsGetByEmail(),
				agentsGetAll(),
			},
		},
		{
			Struct:           Comment{},
			PrimaryQueryName: CommentsGetByID,
			PrimaryKeyField:  "comment_id",
			InsertQuery:      commentsInsert,
			Queries: []*storage.Query{
				commentsGetByID(),
				commentsGetByLeadID(),
			},
		},
	}
}
