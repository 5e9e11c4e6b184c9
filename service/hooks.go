package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/truemediaorg/crosspostfields/model"

	log "github.com/sirupsen/logrus"
)

const (
	HookPostData = "post"
	HookTermData = "term"
)

type PayloadProcessor interface {
	ProcessPostData(ctx context.Context, payload model.Payload, dest model.Destination) (model.Payload, error)
	ProcessTermData(ctx context.Context, payload model.Payload, dest model.Destination) (model.Payload, error)
}

// HookServer is where the crosspost pipeline sends payloads right before they go out.
type HookServer struct {
	Server http.Server
}

/*
Both hooks take

	{"destination": {"handle": "shop"}, "payload": {"id": 12, "meta": {...}}}

and respond with the payload, transcoded for the destination.
*/
type hookRequest struct {
	Destination model.Destination `json:"destination"`
	Payload     model.Payload     `json:"payload"`
}

type hookError struct {
	Error string `json:"error"`
}

type processFunc func(ctx context.Context, payload model.Payload, dest model.Destination) (model.Payload, error)

func NewHookServer(port int, processor PayloadProcessor, metrics *Metrics) HookServer {
	mux := http.NewServeMux()
	mux.Handle("/hooks/post", handleHook(HookPostData, processor.ProcessPostData, metrics))
	mux.Handle("/hooks/term", handleHook(HookTermData, processor.ProcessTermData, metrics))
	return HookServer{
		Server: http.Server{
			Addr:    fmt.Sprintf("0.0.0.0:%d", port),
			Handler: mux,
		},
	}
}

func handleHook(hook string, process processFunc, metrics *Metrics) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if r.Method != http.MethodPost {
				w.Header().Set("Allow", http.MethodPost)
				writeHookError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
				return
			}

			var req hookRequest
			decoder := json.NewDecoder(r.Body)
			// Keep IDs as written rather than turning them into floats
			decoder.UseNumber()
			if err := decoder.Decode(&req); err != nil {
				metrics.Observe(hook, OutcomeBadRequest, time.Since(start))
				writeHookError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
				return
			}

			logger := log.WithField("hook", hook).WithField("destination", req.Destination.Handle).WithField("id", req.Payload["id"])
			payload, err := process(r.Context(), req.Payload, req.Destination)
			if err != nil {
				if errors.Is(err, model.ErrDestinationInvalid) {
					metrics.Observe(hook, OutcomeDestinationInvalid, time.Since(start))
					logger.Errorf("destination rejected: %v", err)
					writeHookError(w, http.StatusUnprocessableEntity, err)
					return
				}
				metrics.Observe(hook, OutcomeError, time.Since(start))
				logger.Errorf("error processing payload: %v", err)
				writeHookError(w, http.StatusInternalServerError, err)
				return
			}

			metrics.Observe(hook, OutcomeOK, time.Since(start))
			logger.Debug("processed payload")
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(payload); err != nil {
				logger.Errorf("error writing response: %v", err)
			}
		},
	)
}

func writeHookError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(hookError{Error: err.Error()})
}
