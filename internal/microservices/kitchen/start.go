package kitchen

import (
	"context"
	"database/sql"
	"strconv"

	"dining-system/internal/common/httpx"
	"dining-system/internal/common/logger"
	"dining-system/internal/microservices/kitchen/handlers"
	"dining-system/internal/microservices/kitchen/repository"
	"dining-system/internal/microservices/kitchen/service"
)

// Run starts the kitchen dashboard HTTP service and blocks until ctx is
// cancelled.
func Run(ctx context.Context, port int, db *sql.DB) error {
	lg := logger.New("kitchen-service")

	repo := repository.NewKitchenRepository(db)
	svc := service.NewKitchenService(repo, lg)
	h := handlers.New(svc)

	srv := httpx.New(":"+strconv.Itoa(port), handlers.Router(h))
	lg.Info("listening", map[string]any{"port": port})
	return srv.Run(ctx)
}
