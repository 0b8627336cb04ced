package factors

import (
	"context"
	"fmt"

	"github.com/carbonex/footprint/internal/logging"
)

// Resolver looks up emission factors for the scope calculators. The
// store is queried first; when it is unreachable the resolver falls
// back to the built-in table. A nil store skips straight to the
// built-in table, which is how the CLI runs without a database.
type Resolver struct {
	store Store
}

// NewResolver returns a Resolver backed by store. store may be nil.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the best-matching emission factor for the tuple
// (category, subcategory, scope, region).
//
// Records whose region equals the requested region or GLOBAL are
// accepted; when both exist the region-specific record wins. Returns
// ErrFactorNotFound when neither the store nor the built-in table has a
// match — there is no safe default factor.
func (r *Resolver) Resolve(ctx context.Context, category, subcategory string, scope int, region string) (EmissionFactor, error) {
	log := logging.FromContext(ctx)

	if r.store != nil {
		matches, err := r.store.QueryFactors(ctx, category, subcategory, scope, []string{region, GlobalRegion})
		if err != nil {
			// Store unavailability falls back to the built-in table;
			// the built-in table's own misses still fail below.
			log.Warn().
				Str("component", "factors").
				Str("category", category).
				Str("subcategory", subcategory).
				Int("scope", scope).
				Err(err).
				Msg("factor store unavailable, using built-in table")
		} else if best, ok := pickBest(matches, region); ok {
			return best, nil
		}
		// An empty store result is treated the same as a store that is
		// down: both fall through to the built-in table. Only a miss in
		// both surfaces ErrFactorNotFound.
	}

	if f, ok := lookupBuiltin(category, subcategory, scope, region); ok {
		log.Debug().
			Str("component", "factors").
			Str("category", category).
			Str("subcategory", subcategory).
			Int("scope", scope).
			Str("region", region).
			Str("source", f.Source).
			Msg("factor resolved from built-in table")
		return f, nil
	}

	return EmissionFactor{}, fmt.Errorf("%w: category=%s subcategory=%s scope=%d region=%s",
		ErrFactorNotFound, category, subcategory, scope, region)
}

// pickBest applies the specific-over-GLOBAL tie-break to a store result
// set. The store is expected to return at most a handful of rows.
func pickBest(matches []EmissionFactor, region string) (EmissionFactor, bool) {
	var global EmissionFactor
	var haveGlobal bool

	for _, f := range matches {
		if f.Region == region && region != GlobalRegion {
			return f, true
		}
		if f.Region == GlobalRegion && !haveGlobal {
			global = f
			haveGlobal = true
		}
	}

	return global, haveGlobal
}
