package display

import (
	"fmt"
	"sync"

	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// AutoProvider selects the first available provider
const AutoProvider = "auto"

// Registry manages display server providers and handles display detection
type Registry struct {
	providers []Provider
	mu        sync.RWMutex
}

var (
	globalRegistry = &Registry{
		providers: make([]Provider, 0),
	}
)

// Register adds a display server provider to the global registry
// This is typically called from init() functions in display-specific packages
func Register(provider Provider) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.providers = append(globalRegistry.providers, provider)
}

// DetectDisplay returns the first available non-fallback provider, then the
// first available fallback. Registration order breaks ties.
func DetectDisplay() (Provider, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, fallback := range []bool{false, true} {
		for _, p := range globalRegistry.providers {
			if p.GetDisplayInfo().Fallback == fallback && p.IsAvailable() {
				return p, nil
			}
		}
	}

	return nil, fmt.Errorf("no compatible display server detected (tried %d providers)", len(globalRegistry.providers))
}

// GetAllProviders returns all registered providers
func GetAllProviders() []Provider {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	providers := make([]Provider, len(globalRegistry.providers))
	copy(providers, globalRegistry.providers)
	return providers
}

// GetProvider returns a specific provider by display server name, or nil if not found
func GetProvider(displayName string) Provider {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, p := range globalRegistry.providers {
		if p.GetDisplayInfo().Name == displayName {
			return p
		}
	}

	return nil
}

// Open resolves the provider by name ("auto" detects one) and opens it. When
// auto-detection picks a real display that then fails to open, the first
// available fallback is used instead.
func Open(providerName, displayName string) (Capabilities, DisplayInfo, error) {
	if providerName == "" || providerName == AutoProvider {
		p, err := DetectDisplay()
		if err != nil {
			return nil, DisplayInfo{}, err
		}

		caps, err := p.Open(displayName)
		if err == nil {
			return caps, p.GetDisplayInfo(), nil
		}

		logger.Warn("Display provider failed to open, trying fallback", "provider", p.GetDisplayInfo().Name, "error", err)
		if fb := fallbackProvider(); fb != nil && fb != p {
			caps, fbErr := fb.Open(displayName)
			if fbErr == nil {
				return caps, fb.GetDisplayInfo(), nil
			}
		}
		return nil, DisplayInfo{}, err
	}

	p := GetProvider(providerName)
	if p == nil {
		return nil, DisplayInfo{}, fmt.Errorf("unknown display provider %q", providerName)
	}

	caps, err := p.Open(displayName)
	if err != nil {
		return nil, DisplayInfo{}, fmt.Errorf("failed to open %s display: %w", providerName, err)
	}
	return caps, p.GetDisplayInfo(), nil
}

func fallbackProvider() Provider {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, p := range globalRegistry.providers {
		if p.GetDisplayInfo().Fallback && p.IsAvailable() {
			return p
		}
	}
	return nil
}

// ClearProviders removes all registered providers (primarily for testing)
func ClearProviders() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.providers = make([]Provider, 0)
}
