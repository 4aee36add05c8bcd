package tips

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/healthmetrics/internal/telemetry/metrics"
	"github.com/2beens/healthmetrics/internal/telemetry/tracing"
	"github.com/2beens/healthmetrics/pkg"
)

// SessionHeaderName carries the carousel session token. Responses echo
// it back so clients without a session can keep the one created for them.
const SessionHeaderName = "X-Tips-Session"

const adminSecretHeaderName = "X-Admin-Secret"

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tips_test

type sessionStore interface {
	NewSession(ctx context.Context) (string, error)
	Get(ctx context.Context, token string) (int, error)
	Set(ctx context.Context, token string, index int) error
}

type TipResponse struct {
	Tip string `json:"tip"`
}

type CarouselTipResponse struct {
	Tip   string `json:"tip"`
	Index int    `json:"index"`
}

type Handler struct {
	manager         *Manager
	sessions        sessionStore
	adminSecretHash string
	tipsCsvPath     string
	metrics         *metrics.Manager
}

func NewHandler(
	manager *Manager,
	sessions sessionStore,
	adminSecretHash string,
	tipsCsvPath string,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		manager:         manager,
		sessions:        sessions,
		adminSecretHash: adminSecretHash,
		tipsCsvPath:     tipsCsvPath,
		metrics:         metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	tipsRouter := mainRouter.PathPrefix("/tips").Subrouter()
	tipsRouter.HandleFunc("/random", handler.HandleRandom).Methods("GET").Name("tips-random")
	tipsRouter.HandleFunc("/current", handler.HandleCurrent).Methods("GET").Name("tips-current")
	tipsRouter.HandleFunc("/next", handler.HandleNext).Methods("POST", "OPTIONS").Name("tips-next")
	tipsRouter.HandleFunc("/prev", handler.HandlePrev).Methods("POST", "OPTIONS").Name("tips-prev")
	tipsRouter.HandleFunc("/reload", handler.HandleReload).Methods("POST", "OPTIONS").Name("tips-reload")
}

// sessionIndex resolves the carousel session for the request. Requests
// without a token, or with an expired one, get a fresh session.
func (handler *Handler) sessionIndex(ctx context.Context, r *http.Request) (token string, index int, err error) {
	token = r.Header.Get(SessionHeaderName)
	if token == "" {
		token, err = handler.sessions.NewSession(ctx)
		return token, 0, err
	}

	index, err = handler.sessions.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		token, err = handler.sessions.NewSession(ctx)
		return token, 0, err
	}

	return token, index, err
}

func (handler *Handler) writeCarouselTip(w http.ResponseWriter, token string, index int) {
	resp := CarouselTipResponse{
		Tip:   handler.manager.TipAt(index),
		Index: index,
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("tips, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterTipsServed.Inc()
	w.Header().Set(SessionHeaderName, token)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "tipsHandler.random")
	defer span.End()

	respJson, err := json.Marshal(TipResponse{Tip: handler.manager.RandomTip()})
	if err != nil {
		log.Errorf("random tip, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterTipsServed.Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tipsHandler.current")
	defer span.End()

	token, index, err := handler.sessionIndex(ctx, r)
	if err != nil {
		log.Errorf("current tip, session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("tips.index", index))

	handler.writeCarouselTip(w, token, index)
}

func (handler *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tipsHandler.next")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token, index, err := handler.sessionIndex(ctx, r)
	if err != nil {
		log.Errorf("next tip, session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	newIndex := NextIndex(index)
	if err := handler.sessions.Set(ctx, token, newIndex); err != nil {
		log.Errorf("next tip, save session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("tips.index", newIndex))

	handler.writeCarouselTip(w, token, newIndex)
}

func (handler *Handler) HandlePrev(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tipsHandler.prev")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token, index, err := handler.sessionIndex(ctx, r)
	if err != nil {
		log.Errorf("prev tip, session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	newIndex := PrevIndex(index)
	if err := handler.sessions.Set(ctx, token, newIndex); err != nil {
		log.Errorf("prev tip, save session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("tips.index", newIndex))

	handler.writeCarouselTip(w, token, newIndex)
}

func (handler *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "tipsHandler.reload")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	secret := r.Header.Get(adminSecretHeaderName)
	if secret == "" || !pkg.CheckSecretHash(secret, handler.adminSecretHash) {
		log.Warnf("unauthorized tips reload attempt from %s", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if handler.tipsCsvPath == "" {
		http.Error(w, "error, no tips file configured", http.StatusBadRequest)
		return
	}

	tipsCsvFile, err := os.Open(handler.tipsCsvPath)
	if err != nil {
		log.Errorf("tips reload, open tips file: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := tipsCsvFile.Close(); err != nil {
			log.Warnf("close tips csv file: %s", err)
		}
	}()

	if err := handler.manager.Reload(csv.NewReader(tipsCsvFile)); err != nil {
		log.Errorf("tips reload: %s", err)
		http.Error(w, "error, tips file not usable", http.StatusInternalServerError)
		return
	}

	log.Infof("tips reloaded, %d tips", handler.manager.Count())
	pkg.WriteTextResponseOK(w, "reloaded")
}
