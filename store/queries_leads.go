package store

import storage "github.com/osr-alliance/backend-service-leads"

func leadsGetByID() *storage.Query {
	return &storage.Query{
		Name:     LeadsGetByID,
		CacheKey: "lead_id=%v",

		Query: "select * from leads where lead_id=:lead_id",

		InsertAction: storage.CacheSet,
		UpdateAction: storage.CacheSet,
		SelectAction: storage.CacheSet,
	}
}

// leadsGetByIDForUpdate locks the row for a read-modify-write; it's only used inside a transaction
func leadsGetByIDForUpdate() *storage.Query {
	return &storage.Query{
		Name: LeadsGetByIDForUpdate,

		Query: "select * from leads where lead_id=:lead_id for update",

		InsertAction: storage.CacheNoAction,
		UpdateAction: storage.CacheNoAction,
		SelectAction: storage.CacheNoAction,
	}
}

func leadsGetAll() *storage.Query {
	return &storage.Query{
		Name:               LeadsGetAll,
		CacheDataStructure: storage.CacheDataStructureList,

		Query: "select * from leads order by created_at, lead_id",

		InsertAction: storage.CacheDel,
		UpdateAction: storage.CacheDel,
		SelectAction: storage.CacheSet,
	}
}

func leadsGetByStatus() *storage.Query {
	return &storage.Query{
		Name:               LeadsGetByStatus,
		CacheKey:           "status=%v",
		CacheDataStructure: storage.CacheDataStructureList,

		Query: "select * from leads where status=:status order by created_at, lead_id",

		InsertAction: storage.CacheDel,
		UpdateAction: storage.CacheDel, // an update can move a lead between statuses
		SelectAction: storage.CacheSet,
	}
}

const leadsInsert = `INSERT INTO leads (name, source, sales_agent_id, status, tags, time_to_close, priority)
VALUES
(:name, :source, :sales_agent_id, :status, :tags, :time_to_close, :priority) RETURNING *` // note: make sure it's RETURNING *

const leadsUpdate = `UPDATE leads SET name=:name, source=:source, sales_agent_id=:sales_agent_id, status=:status,
tags=:tags, time_to_close=:time_to_close, priority=:priority, updated_at=now()
WHERE lead_id=:lead_id RETURNING *` // note: make sure it's RETURNING *

const leadsDelete = `DELETE FROM leads WHERE lead_id=:lead_id RETURNING *`
