package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/account"
	"github.com/bobmcallan/folio/internal/services/insights"
	"github.com/bobmcallan/folio/internal/services/market"
	"github.com/bobmcallan/folio/internal/services/news"
	"github.com/bobmcallan/folio/internal/services/portfolio"
	"github.com/bobmcallan/folio/internal/services/synthetic"
	testcommon "github.com/bobmcallan/folio/test/common"
)

type testEnv struct {
	store     *testcommon.MemoryStorage
	quotes    *testcommon.MockQuoteProvider
	news      *testcommon.MockNewsProvider
	sentiment *testcommon.MockSentimentProvider
	app       *app.App
	handler   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Auth.JWTSecret = "test-secret"
	logger := common.NewSilentLogger()

	env := &testEnv{
		store:     testcommon.NewMemoryStorage(),
		quotes:    testcommon.NewMockQuoteProvider(),
		news:      &testcommon.MockNewsProvider{Articles: testcommon.SampleArticles(8), Total: 120},
		sentiment: &testcommon.MockSentimentProvider{Labels: map[string]string{"story 0": models.SentimentPositive}},
	}

	gen := synthetic.NewGenerator(42)
	policy := synthetic.Policy{Mode: synthetic.ModeAuto}

	marketService := market.NewService(env.quotes, gen, policy, logger)
	marketService.SetSearchDelay(0)
	portfolioService := portfolio.NewService(env.store, marketService, gen, logger)

	env.app = &app.App{
		Config:           cfg,
		Logger:           logger,
		Storage:          env.store,
		QuoteClient:      env.quotes,
		NewsClient:       env.news,
		SentimentClient:  env.sentiment,
		StockClassifier:  env.sentiment,
		Synthetic:        gen,
		Policy:           policy,
		MarketService:    marketService,
		NewsService:      news.NewService(env.news, 0, logger),
		PortfolioService: portfolioService,
		InsightService:   insights.NewService(env.news, env.sentiment, env.sentiment, gen, logger),
		AccountService:   account.NewService(env.store, portfolioService, logger),
	}
	env.handler = NewServer(env.app).Handler()
	return env
}

// signup registers an account, optionally upgrades it and returns its user id
// and bearer token.
func (e *testEnv) signup(t *testing.T, email string, plan models.SubscriptionPlan) (string, string) {
	t.Helper()
	ctx := context.Background()

	user, profile, err := e.app.AccountService.Register(ctx, email, "password123", "Test User")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if plan != models.PlanFree {
		if profile, err = e.app.AccountService.Upgrade(ctx, user.UserID, string(plan)); err != nil {
			t.Fatalf("upgrade %s: %v", email, err)
		}
	}

	token, err := signJWT(user, profile, &e.app.Config.Auth)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return user.UserID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}
