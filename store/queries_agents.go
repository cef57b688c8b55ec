package store

import storage "github.com/osr-alliance/backend-service-leads"

func agentsGetByID() *storage.Query {
	return &storage.Query{
		Name:     AgentsGetByID,
		CacheKey: "agent_id=%v",

		Query: "select * from agents where agent_id=:agent_id",

		InsertAction: storage.CacheSet,
		UpdateAction: storage.CacheSet,
		SelectAction: storage.CacheSet,
	}
}

func agentsGetByEmail() *storage.Query {
	return &storage.Query{
		Name:     AgentsGetByEmail,
		CacheKey: "email=%v",

		Query: "select * from agents where email=:email",

		InsertAction: storage.CacheSet,
		UpdateAction: storage.CacheDel, // the old email's key can't be found from the new row
		SelectAction: storage.CacheSet,
	}
}

func agentsGetAll() *storage.Query {
	return &storage.Query{
		Name:               AgentsGetAll,
		CacheDataStructure: storage.CacheDataStructureList,

		Query: "select * from agents order by created_at, agent_id",

		InsertAction: storage.CacheDel,
		UpdateAction: storage.CacheDel,
		SelectAction: storage.CacheSet,
	}
}

const agentsInsert = `INSERT INTO agents (name, email)
VALUES
(:name, :email) RETURNING *` // note: make sure it's RETURNING *
