package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	storage "github.com/osr-alliance/backend-service-leads"
	"github.com/sirupsen/logrus"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrAgentNotFound = errors.New("agent not found")
	ErrEmailExists   = errors.New("agent email already exists")
)

type Store interface {
	CreateLead(ctx context.Context, lead *Lead) error
	GetLead(ctx context.Context, id string) (*Lead, error)
	ListLeads(ctx context.Context) ([]Lead, error)
	UpdateLead(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	DeleteLead(ctx context.Context, id string) (*Lead, error)
	LeadsByStatus(ctx context.Context, status string) ([]Lead, error)

	CreateAgent(ctx context.Context, agent *Agent) error
	GetAgent(ctx context.Context, id string) (*Agent, error)
	GetAgentByEmail(ctx context.Context, email string) (*Agent, error)
	ListAgents(ctx context.Context) ([]Agent, error)

	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, leadID string) ([]Comment, error)

	Ping(ctx context.Context) error
}

type store struct {
	store storage.Storage
}

type Config struct {
	ReadConn  *sqlx.DB
	WriteConn *sqlx.DB
	Redis     *redis.Client // nil runs without a cache
	TTL       int           // seconds; 0 keeps DefaultTTL
	Debugger  bool
	Logger    logrus.FieldLogger
}

const ServiceName = "leads"

func New(conf *Config) (Store, error) {
	ttl := conf.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	// instantiate the storage
	c := &storage.Config{
		ReadOnlyDbConn:  conf.ReadConn,
		WriteOnlyDbConn: conf.WriteConn,
		Redis:           conf.Redis,
		Tables:          tables(),
		Debugger:        conf.Debugger,
		Logger:          conf.Logger,
		ServiceName:     ServiceName,
		DefaultTTL:      ttl,
		DoNotUseCache:   conf.Redis == nil,
	}

	s, err := storage.New(c)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return &store{
		store: s,
	}, nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// notFound swaps storage.ErrNotFound for the record's own error
func notFound(err error, target error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return target
	}
	return err
}

// normalizeID returns the canonical lowercase form of a uuid so every spelling of an id shares one cache key.
// Anything that isn't a uuid is returned as is and left for postgres to reject.
func normalizeID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()
}

func normalizeIDPtr(id *string) *string {
	if id == nil {
		return nil
	}
	n := normalizeID(*id)
	return &n
}
