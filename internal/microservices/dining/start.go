package dining

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"dining-system/internal/common/httpx"
	"dining-system/internal/common/logger"
	"dining-system/internal/config"
	"dining-system/internal/connections/rabbitmq"
	"dining-system/internal/microservices/dining/handlers"
	"dining-system/internal/microservices/dining/repository"
	"dining-system/internal/microservices/dining/service"
)

// Run starts the dining floor HTTP service and blocks until ctx is
// cancelled.
func Run(ctx context.Context, port int, db *sql.DB, rmq *rabbitmq.Client, branch config.BranchConfig) error {
	lg := logger.New("dining-service")

	repo := repository.New(db)
	svc := service.New(repo, rmq, branch, lg)
	h := handlers.New(svc)

	mux := handlers.Router(h)
	mux.HandleFunc("GET /healthz", health(map[string]func(context.Context) error{
		"database": db.PingContext,
		"rabbitmq": func(context.Context) error { return rmq.Ping() },
	}))

	srv := httpx.New(":"+strconv.Itoa(port), mux)
	lg.Info("listening", map[string]any{"port": port})
	return srv.Run(ctx)
}

// health reports 200 while every dependency answers its ping, 503 otherwise.
func health(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]string, len(checks))
		code := http.StatusOK
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status[name] = err.Error()
				code = http.StatusServiceUnavailable
			} else {
				status[name] = "ok"
			}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
