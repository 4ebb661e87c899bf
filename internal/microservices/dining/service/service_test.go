package service

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"dining-system/internal/common/logger"
	"dining-system/internal/config"
	"dining-system/internal/connections/rabbitmq"
	"dining-system/internal/microservices/dining/domain/dto"
	"dining-system/internal/microservices/dining/repository"

	"github.com/shopspring/decimal"
)

// eventRecorder captures published routing keys instead of talking to a
// broker.
type eventRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *eventRecorder) Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exchange == rabbitmq.ExchangeDining {
		r.keys = append(r.keys, key)
	}
	return nil
}

func (r *eventRecorder) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func newTestService() (*DiningService, *repository.Memory, *eventRecorder) {
	mem := repository.NewMemory()
	rec := &eventRecorder{}
	branch := config.BranchConfig{ID: "branch-1", Name: "Test Branch", VATNumber: "VAT-123"}
	svc := NewWithStores(mem, mem, mem, rec, branch, logger.New("test"))
	return svc, mem, rec
}

func item(name string, qty int, price string) dto.OrderItemInput {
	return dto.OrderItemInput{Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}
