package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dining-system/internal/common/logger"
	"dining-system/internal/config"
	"dining-system/internal/connections/rabbitmq"
	"dining-system/internal/microservices/dining/domain/dao"
	"dining-system/internal/microservices/dining/domain/dto"
	"dining-system/internal/microservices/dining/repository"
)

// DiningServiceInterface is the full surface the dining handlers consume:
// table registry, session lifecycle, order ledger and invoice builder.
type DiningServiceInterface interface {
	ListEnabledTables(ctx context.Context, branchID string) ([]dao.Table, error)
	SetTableStatus(ctx context.Context, branchID, tableID, status string) error

	OpenSession(ctx context.Context, branchID, tableName string) (dao.DiningSession, error)
	GetActiveSession(ctx context.Context, branchID, tableName string) (dao.DiningSession, error)
	CompleteSession(ctx context.Context, sessionID string) (dao.DiningSession, error)
	RequestPayment(ctx context.Context, sessionID string) error

	SubmitOrder(ctx context.Context, sessionID string, req dto.SubmitOrderRequest) (dto.SubmitOrderResponse, error)
	AdvanceOrderStatus(ctx context.Context, orderID, next string) (dao.DiningOrder, error)
	OrdersForSession(ctx context.Context, sessionID string) ([]dao.DiningOrder, error)

	BuildInvoice(ctx context.Context, sessionID string) (dao.Invoice, error)
}

// EventPublisher is satisfied by the rabbitmq client; tests substitute a
// recorder.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table) error
}

type DiningService struct {
	tables   repository.Tables
	sessions repository.Sessions
	orders   repository.Orders
	events   EventPublisher
	branch   config.BranchConfig
	lg       *logger.Logger
}

func New(repo *repository.Repository, events EventPublisher, branch config.BranchConfig, lg *logger.Logger) *DiningService {
	return &DiningService{
		tables:   repo.Tables,
		sessions: repo.Sessions,
		orders:   repo.Orders,
		events:   events,
		branch:   branch,
		lg:       lg,
	}
}

// NewWithStores wires explicit store implementations; tests use this with
// the in-memory repository.
func NewWithStores(tables repository.Tables, sessions repository.Sessions, orders repository.Orders,
	events EventPublisher, branch config.BranchConfig, lg *logger.Logger) *DiningService {
	return &DiningService{
		tables:   tables,
		sessions: sessions,
		orders:   orders,
		events:   events,
		branch:   branch,
		lg:       lg,
	}
}

// publish sends a lifecycle event after the state change committed. Broker
// trouble is logged, not surfaced: the mutation already happened.
func (s *DiningService) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.lg.Error("event_marshal_failed", err, map[string]any{"key": key})
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	headers := amqp.Table{"x-source": "dining-service"}
	if err := s.events.Publish(pctx, rabbitmq.ExchangeDining, key, body, headers); err != nil {
		s.lg.Error("event_publish_failed", err, map[string]any{"key": key})
	}
}
