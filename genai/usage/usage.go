package usage

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/mbrewrite/genai/llm"
)

// Stat accumulates token numbers for a single model.
type Stat struct {
	Calls            int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Aggregator collects usage grouped by model name.
type Aggregator struct {
	mux      sync.RWMutex
	PerModel map[string]*Stat
}

// OnUsage matches base.UsageListener so that an Aggregator can be handed
// to provider clients as aggregator.OnUsage.
func (a *Aggregator) OnUsage(model string, u *llm.Usage) {
	if u == nil {
		return
	}
	a.Add(model, u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}

// Add records a single call with its token counts for a model.
func (a *Aggregator) Add(model string, prompt, completion, total int) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.PerModel == nil {
		a.PerModel = map[string]*Stat{}
	}
	stat, ok := a.PerModel[model]
	if !ok {
		stat = &Stat{}
		a.PerModel[model] = stat
	}
	stat.Calls++
	stat.PromptTokens += prompt
	stat.CompletionTokens += completion
	stat.TotalTokens += total
}

// Stat returns a copy of the stat for the model, or nil when nothing was recorded.
func (a *Aggregator) Stat(model string) *Stat {
	a.mux.RLock()
	defer a.mux.RUnlock()
	stat, ok := a.PerModel[model]
	if !ok {
		return nil
	}
	ret := *stat
	return &ret
}

// Totals returns accumulated prompt, completion and total tokens across all tracked models.
func (a *Aggregator) Totals() (prompt, completion, total int) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	for _, stat := range a.PerModel {
		prompt += stat.PromptTokens
		completion += stat.CompletionTokens
		total += stat.TotalTokens
	}
	return prompt, completion, total
}

// Keys returns sorted list of model names.
func (a *Aggregator) Keys() []string {
	a.mux.RLock()
	defer a.mux.RUnlock()
	keys := make([]string, 0, len(a.PerModel))
	for k := range a.PerModel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type keyT struct{}

var key = keyT{}

// WithAggregator injects Aggregator into context.
func WithAggregator(ctx context.Context) (context.Context, *Aggregator) {
	agg := &Aggregator{}
	return context.WithValue(ctx, key, agg), agg
}

func FromContext(ctx context.Context) *Aggregator {
	v := ctx.Value(key)
	if v == nil {
		return nil
	}
	if a, ok := v.(*Aggregator); ok {
		return a
	}
	return nil
}
