package server

import (
	"ah_market/internal/domain/service/query"
	"ah_market/internal/store"
)

// Server maps HTTP requests onto the read-only query layer. It knows
// nothing about ingestion beyond the published snapshot's metadata.
type Server struct {
	query     *query.Service
	published *store.Published
}

func NewServer(querySvc *query.Service, published *store.Published) Server {
	return Server{
		query:     querySvc,
		published: published,
	}
}
