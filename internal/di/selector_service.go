package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/omarluq/fairdraw/internal/draw"
)

// SelectorService exposes the configured selector and its memoised wrapper.
type SelectorService struct {
	Selector *draw.Selector
	Cached   *draw.CachedSelector
}

// NewSelector builds the selector with the configured reducer.
func NewSelector(i do.Injector) (*SelectorService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)
	cacheSvc := do.MustInvoke[*CacheService](i)

	reducer, err := draw.NewReducer(cfgSvc.Config.Draw.GetEffectiveReducer())
	if err != nil {
		return nil, fmt.Errorf("failed to create selector: %w", err)
	}

	sel := draw.New(draw.WithReducer(reducer), draw.WithLogger(*logSvc.Logger))

	return &SelectorService{
		Selector: sel,
		Cached:   draw.NewCached(sel, cacheSvc.Cache),
	}, nil
}
