// Package common provides shared test infrastructure
package common

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// MemoryStorage is an in-memory StorageManager. It implements both stores
// and is safe for concurrent use.
type MemoryStorage struct {
	mu          sync.Mutex
	users       map[string]*models.InternalUser
	profiles    map[string]*models.Profile
	preferences map[string]*models.Preferences
	portfolios  map[string]*models.Portfolio
	holdings    map[string]*models.Holding

	// SaveErr, when set, is returned by every save.
	SaveErr error
}

// NewMemoryStorage creates an empty in-memory storage manager
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:       make(map[string]*models.InternalUser),
		profiles:    make(map[string]*models.Profile),
		preferences: make(map[string]*models.Preferences),
		portfolios:  make(map[string]*models.Portfolio),
		holdings:    make(map[string]*models.Holding),
	}
}

var (
	_ interfaces.StorageManager = (*MemoryStorage)(nil)
	_ interfaces.InternalStore  = (*MemoryStorage)(nil)
	_ interfaces.PortfolioStore = (*MemoryStorage)(nil)
)

func (m *MemoryStorage) InternalStore() interfaces.InternalStore   { return m }
func (m *MemoryStorage) PortfolioStore() interfaces.PortfolioStore { return m }
func (m *MemoryStorage) Close() error                              { return nil }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, interfaces.ErrNotFound)
}

func (m *MemoryStorage) GetUser(_ context.Context, userID string) (*models.InternalUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, notFound("user", userID)
}

func (m *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*models.InternalUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user", email)
}

func (m *MemoryStorage) SaveUser(_ context.Context, user *models.InternalUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *MemoryStorage) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, notFound("profile", userID)
}

func (m *MemoryStorage) SaveProfile(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *MemoryStorage) GetPreferences(_ context.Context, userID string) (*models.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.preferences[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, notFound("preferences", userID)
}

func (m *MemoryStorage) SavePreferences(_ context.Context, prefs *models.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *prefs
	m.preferences[prefs.UserID] = &cp
	return nil
}

func (m *MemoryStorage) GetPortfolioByUser(_ context.Context, userID string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.portfolios {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, notFound("portfolio for user", userID)
}

func (m *MemoryStorage) GetPortfolio(_ context.Context, portfolioID string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.portfolios[portfolioID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, notFound("portfolio", portfolioID)
}

func (m *MemoryStorage) SavePortfolio(_ context.Context, portfolio *models.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *portfolio
	m.portfolios[portfolio.ID] = &cp
	return nil
}

func (m *MemoryStorage) ListHoldings(_ context.Context, portfolioID string) ([]*models.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Holding{}
	for _, h := range m.holdings {
		if h.PortfolioID == portfolioID {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStorage) GetHolding(_ context.Context, holdingID string) (*models.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holdings[holdingID]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, notFound("holding", holdingID)
}

func (m *MemoryStorage) SaveHolding(_ context.Context, holding *models.Holding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *holding
	m.holdings[holding.ID] = &cp
	return nil
}

func (m *MemoryStorage) DeleteHolding(_ context.Context, holdingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holdings, holdingID)
	return nil
}

// MockQuoteProvider implements QuoteProvider for testing. Symbols missing
// from Quotes are reported as not found.
type MockQuoteProvider struct {
	mu     sync.Mutex
	Quotes map[string]models.QuoteResult
	Search models.SymbolSearchResult
	Calls  int
}

// NewMockQuoteProvider creates a mock quote provider with an empty search result
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		Quotes: make(map[string]models.QuoteResult),
		Search: models.SymbolSearchResult{Status: models.SearchEmpty},
	}
}

// SetQuote registers a found quote
func (m *MockQuoteProvider) SetQuote(symbol string, price, change, changePercent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Quotes[symbol] = models.QuoteFoundResult(&models.StockQuote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
	})
}

func (m *MockQuoteProvider) GetQuote(_ context.Context, symbol string) models.QuoteResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if r, ok := m.Quotes[symbol]; ok {
		return r
	}
	return models.QuoteNotFoundResult()
}

func (m *MockQuoteProvider) SearchSymbols(_ context.Context, _ string) models.SymbolSearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Search
}

// MockNewsProvider implements NewsProvider for testing
type MockNewsProvider struct {
	mu       sync.Mutex
	Articles []models.NewsArticle
	Total    int
	Err      error
	Queries  []models.NewsQuery
}

func (m *MockNewsProvider) SearchNews(_ context.Context, q models.NewsQuery) (*models.NewsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	if m.Err != nil {
		return nil, m.Err
	}
	articles := m.Articles
	if q.PageSize > 0 && len(articles) > q.PageSize {
		articles = articles[:q.PageSize]
	}
	total := m.Total
	if total == 0 {
		total = len(articles)
	}
	return &models.NewsPage{Articles: append([]models.NewsArticle{}, articles...), Total: total}, nil
}

// SampleArticles returns n distinct articles
func SampleArticles(n int) []models.NewsArticle {
	out := make([]models.NewsArticle, n)
	for i := range out {
		out[i] = models.NewsArticle{
			ID:              fmt.Sprintf("news_1718452800000_%d", i),
			Title:           fmt.Sprintf("Markets move on story %d", i),
			Summary:         fmt.Sprintf("Summary of story %d", i),
			Source:          "Reuters",
			URL:             fmt.Sprintf("https://example.com/%d", i),
			Sentiment:       models.SentimentNeutral,
			RelevantSymbols: []string{},
		}
	}
	return out
}

// MockSentimentProvider implements SentimentProvider for testing. Texts
// containing a key of Labels get that label; others are neutral.
type MockSentimentProvider struct {
	mu     sync.Mutex
	Labels map[string]string
	Err    error
	Name   string
	Calls  int
}

func (m *MockSentimentProvider) AnalyzeSentiment(_ context.Context, text string) (*models.SentimentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	label := models.SentimentNeutral
	for k, v := range m.Labels {
		if strings.Contains(text, k) {
			label = v
			break
		}
	}
	res := &models.SentimentResult{Sentiment: label, Confidence: 90, Model: m.Model()}
	switch label {
	case models.SentimentPositive:
		res.Score = 0.9
	case models.SentimentNegative:
		res.Score = -0.9
	}
	res.Raw = []models.LabelScore{{Label: label, Score: 0.9}}
	return res, nil
}

func (m *MockSentimentProvider) Model() string {
	if m.Name == "" {
		return "mock-sentiment"
	}
	return m.Name
}
