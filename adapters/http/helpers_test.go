package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/adapters/clock"
	"github.com/artpar/thermogate/adapters/hasher"
	apihttp "github.com/artpar/thermogate/adapters/http"
	"github.com/artpar/thermogate/adapters/idgen"
	"github.com/artpar/thermogate/adapters/memory"
	"github.com/artpar/thermogate/adapters/metrics"
	"github.com/artpar/thermogate/adapters/random"
	"github.com/artpar/thermogate/app"
	"github.com/artpar/thermogate/bootstrap"
	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/pkg/jsonapi"
	"github.com/artpar/thermogate/ports"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router   http.Handler
	keys     *app.KeyService
	counters *memory.UsageCounters
	recorder *bootstrap.UsageRecorder
	subs     *memory.SubscriberStore
	clock    *clock.Fake
	metrics  *metrics.Collector
	registry *prometheus.Registry
}

type envOption func(*envConfig)

type envConfig struct {
	policy  app.KeyPolicy
	store   func(ports.KeyStore) ports.KeyStore
	openapi bool
	health  apihttp.HealthChecker
}

func withPolicy(p app.KeyPolicy) envOption {
	return func(c *envConfig) { c.policy = p }
}

func withKeyStore(wrap func(ports.KeyStore) ports.KeyStore) envOption {
	return func(c *envConfig) { c.store = wrap }
}

func withOpenAPI() envOption {
	return func(c *envConfig) { c.openapi = true }
}

func withHealth(h apihttp.HealthChecker) envOption {
	return func(c *envConfig) { c.health = h }
}

func setupTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := zerolog.Nop()
	format := key.DefaultFormat()

	var store ports.KeyStore = memory.NewKeyStore(hasher.Fake{}, random.Real{}, format)
	if cfg.store != nil {
		store = cfg.store(store)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(reg)
	collector.ObserveKeyStore(store)

	counters := memory.NewUsageCounters()
	collector.ObserveUsage(counters)
	recorder := bootstrap.NewUsageRecorder(counters, 0)
	t.Cleanup(func() { recorder.Close() })

	subs := memory.NewSubscriberStore()
	clk := clock.NewFake(baseTime)

	keys := app.NewKeyService(store, format, cfg.policy, collector, logger)
	health := cfg.health
	if health == nil {
		health = subs
	}

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Keys:           keys,
		Conversions:    app.NewConversionService(recorder),
		Subscribers:    app.NewSubscriberService(subs, idgen.NewSequential("sub"), clk, logger),
		Usage:          counters,
		Health:         health,
		Metrics:        collector,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		EnableOpenAPI:  cfg.openapi,
		Version:        "1.2.3",
	}, logger)

	return &testEnv{
		router:   router,
		keys:     keys,
		counters: counters,
		recorder: recorder,
		subs:     subs,
		clock:    clk,
		metrics:  collector,
		registry: reg,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// issueKey requests a key over HTTP and returns it without the CRLF.
func (e *testEnv) issueKey(t *testing.T) string {
	t.Helper()
	rec := e.do(httptest.NewRequest(http.MethodGet, "/api-key", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api-key status = %d, want 200", rec.Code)
	}
	return strings.TrimSuffix(rec.Body.String(), "\r\n")
}

// get performs an authenticated GET. An empty token sends no credential.
func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.SetBasicAuth(token, "")
	}
	return e.do(req)
}

func (e *testEnv) delete(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if token != "" {
		req.SetBasicAuth(token, "")
	}
	return e.do(req)
}

func (e *testEnv) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.recorder.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func decodeDocument(t *testing.T, body io.Reader) jsonapi.Document {
	t.Helper()
	var doc jsonapi.Document
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	doc := decodeDocument(t, rec.Body)
	if len(doc.Errors) == 0 {
		t.Fatalf("expected errors in body: %s", rec.Body.String())
	}
	return doc.Errors[0].Code
}

// failingKeyStore answers Validate and Revoke with err.
type failingKeyStore struct {
	ports.KeyStore
	err error
}

func (s failingKeyStore) Validate(ctx context.Context, token string) (bool, error) {
	return false, s.err
}

func (s failingKeyStore) Revoke(ctx context.Context, token string) error {
	return s.err
}

// counterValue returns the value of the named counter series whose labels
// include every pair in labels, or zero if no series matches.
func (e *testEnv) counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := e.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if hasLabels(m.GetLabel(), labels) && m.GetCounter() != nil {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, lp := range pairs {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
