package store

import storage "github.com/osr-alliance/backend-service-leads"

func commentsGetByID() *storage.Query {
	return &storage.Query{
		Name:     CommentsGetByID,
		CacheKey: "comment_id=%v",

		Query: "select * from comments where comment_id=:comment_id",

		InsertAction: storage.CacheSet,
		UpdateAction: storage.CacheSet,
		SelectAction: storage.CacheSet,
	}
}

func commentsGetByLeadID() *storage.Query {
	return &storage.Query{
		Name:               CommentsGetByLeadID,
		CacheKey:           "lead_id=%v",
		CacheDataStructure: storage.CacheDataStructureList,

		Query: `select c.comment_id, c.lead_id, c.author_id, a.name as author_name, c.comment_text, c.created_at
from comments c join agents a on a.agent_id = c.author_id
where c.lead_id=:lead_id order by c.created_at, c.comment_id`,

		InsertAction: storage.CacheDel,
		UpdateAction: storage.CacheDel,
		SelectAction: storage.CacheSet,
	}
}

const commentsInsert = `INSERT INTO comments (lead_id, author_id, comment_text)
VALUES
(:lead_id, :author_id, :comment_text) RETURNING *` // note: make sure it's RETURNING *
