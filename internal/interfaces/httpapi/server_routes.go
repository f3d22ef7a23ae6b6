package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-match", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncMatchJob)))
	mux.Handle("GET /v1/internal/sync/results/{matchID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetSyncResult)))
}
