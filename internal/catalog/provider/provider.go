package provider

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/httpclient"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
)

// Provider defines the interface for upstream product sources
type Provider interface {
	// Search fetches one page of raw products for the query
	Search(ctx context.Context, query *types.SearchQuery) (*types.RawPage, error)

	// GetID returns the provider ID
	GetID() types.ProviderID

	// GetName returns the provider name
	GetName() string

	// Validate validates the provider configuration
	Validate() error
}

// BaseProvider provides common functionality for all providers
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client
	logger     *logger.Logger

	mu       sync.Mutex
	apiKeys  []string // Support multiple API keys for rotation
	keyIndex int      // Current key index
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig, log *logger.Logger) *BaseProvider {
	if log == nil {
		log = logger.NewNop()
	}

	// Parse multiple API keys (comma-separated)
	var apiKeys []string
	for _, k := range strings.Split(config.APIKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			apiKeys = append(apiKeys, k)
		}
	}

	return &BaseProvider{
		config:     config,
		httpClient: httpclient.New(config.Timeout),
		logger:     log.Named(string(config.ID)),
		apiKeys:    apiKeys,
	}
}

// GetID returns the provider ID
func (b *BaseProvider) GetID() types.ProviderID {
	return b.config.ID
}

// GetName returns the provider name
func (b *BaseProvider) GetName() string {
	return b.config.Name
}

// GetHTTPClient returns the HTTP client
func (b *BaseProvider) GetHTTPClient() *http.Client {
	return b.httpClient
}

// GetAPIKey returns the current API key (with rotation support)
func (b *BaseProvider) GetAPIKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.apiKeys) == 0 {
		return ""
	}

	key := b.apiKeys[b.keyIndex]
	b.keyIndex = (b.keyIndex + 1) % len(b.apiKeys)
	return key
}

// BuildDefaultHeaders builds default HTTP headers
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "SmartShop/1.0",
	}
}

// DoRequest executes exactly one HTTP attempt. Failures are reported to the
// caller as they are.
func (b *BaseProvider) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	return b.httpClient.Do(req.WithContext(ctx))
}

// Validate validates the provider configuration
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}
