// Package capability answers whether an entity type supports the builder.
package capability

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-page-builder/internal/logger"
)

// FeatureChecker is the host lookup behind the gate.
type FeatureChecker interface {
	TypeSupports(ctx context.Context, entityType, feature string) (bool, error)
}

// Gate checks entity types against one host declared feature flag.
type Gate struct {
	checker FeatureChecker
	feature string
}

// NewGate returns a gate for feature.
func NewGate(checker FeatureChecker, feature string) *Gate {
	return &Gate{checker: checker, feature: feature}
}

// FeatureName is the flag the gate checks.
func (g *Gate) FeatureName() string {
	return g.feature
}

// Supports reports whether entityType declares the feature. An absent flag
// or an empty type means false.
func (g *Gate) Supports(ctx context.Context, entityType string) (bool, error) {
	if entityType == "" {
		return false, nil
	}

	ok, err := g.checker.TypeSupports(ctx, entityType, g.feature)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Gate.Supports").
			Str("entity_type", entityType).
			Msg("failed to look up feature flag")
		return false, fmt.Errorf("checking %q support for %q: %w", g.feature, entityType, err)
	}

	return ok, nil
}
