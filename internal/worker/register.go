package worker

import (
	"fees-api/internal/repository"
	"fees-api/internal/service"

	"github.com/hibiken/asynq"
)

func RegisterHandlers(mux *asynq.ServeMux, repos *repository.Repositories) {
	ingestHandler := NewCSVIngestHandler(service.NewCSVService(repos.Fees))
	mux.HandleFunc(TypeCSVIngest, ingestHandler.Handle)
}
