package provider

import (
	"fmt"
	"sync"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
)

// Constructor builds a provider from its configuration
type Constructor func(*types.ProviderConfig, *logger.Logger) (Provider, error)

// Factory creates provider instances
type Factory struct {
	mu           sync.RWMutex
	logger       *logger.Logger
	constructors map[types.ProviderID]Constructor
}

// NewFactory creates a new provider factory
func NewFactory(log *logger.Logger) *Factory {
	f := &Factory{
		logger:       log,
		constructors: make(map[types.ProviderID]Constructor),
	}

	// Register built-in providers
	f.Register(types.ProviderRapidAPIAmazon, NewAmazonProvider)

	return f
}

// Register registers a provider constructor
func (f *Factory) Register(id types.ProviderID, constructor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create creates a provider instance from configuration
func (f *Factory) Create(config *types.ProviderConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderNotFound, config.ID)
	}

	return constructor(config, f.logger)
}

// ListProviders returns a list of all registered provider IDs
func (f *Factory) ListProviders() []types.ProviderID {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]types.ProviderID, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	return ids
}
