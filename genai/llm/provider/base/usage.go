package base

import "github.com/viant/mbrewrite/genai/llm"

// UsageListener is a callback used by provider clients to report token usage
// for each successful request. A struct with an OnUsage method can be adapted
// with its method value, e.g. `aggregator.OnUsage`.
type UsageListener func(model string, usage *llm.Usage)

// OnUsage makes the function usable where a method-based listener is expected.
func (f UsageListener) OnUsage(model string, usage *llm.Usage) {
	if f == nil {
		return
	}
	f(model, usage)
}
