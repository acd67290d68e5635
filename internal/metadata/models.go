// Package metadata is the catalog of models quicktrans knows about. The
// catalog is advisory: any model id is passed through to the provider.
package metadata

// Model describes one hosted model and its list price in USD.
type Model struct {
	Provider         string
	ID               string
	Label            string
	InputPerMillion  float64
	OutputPerMillion float64
}

var Models = []Model{
	{Provider: "google_genai", ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", InputPerMillion: 0.30, OutputPerMillion: 2.50},
	{Provider: "google_genai", ID: "gemini-2.5-flash-lite", Label: "Gemini 2.5 Flash-Lite", InputPerMillion: 0.10, OutputPerMillion: 0.40},
	{Provider: "google_genai", ID: "gemini-2.5-pro", Label: "Gemini 2.5 Pro", InputPerMillion: 1.25, OutputPerMillion: 10.00},
	{Provider: "google_genai", ID: "gemini-3-flash-preview", Label: "Gemini 3 Flash (preview)", InputPerMillion: 0.50, OutputPerMillion: 3.00},
	{Provider: "openai", ID: "gpt-5-mini", Label: "GPT-5 mini", InputPerMillion: 0.25, OutputPerMillion: 2.00},
	{Provider: "openai", ID: "gpt-5.2", Label: "GPT-5.2", InputPerMillion: 1.75, OutputPerMillion: 14.00},
}

// defaults holds the model used when a provider is chosen without a model.
var defaults = map[string]string{
	"google_genai": "gemini-2.5-flash",
	"openai":       "gpt-5-mini",
}

// Fallback prices for models missing from the catalog.
const (
	DefaultInputPerMillion  = 2.00
	DefaultOutputPerMillion = 12.00
)

// DefaultModel returns the default model id for provider.
func DefaultModel(provider string) (string, bool) {
	id, ok := defaults[provider]
	return id, ok
}

// ForProvider lists the catalog entries of provider in catalog order.
func ForProvider(provider string) []Model {
	var out []Model
	for _, m := range Models {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}

// Lookup finds a model by id. Unknown ids get fallback pricing and ok=false.
func Lookup(id string) (Model, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{
		ID:               id,
		Label:            id,
		InputPerMillion:  DefaultInputPerMillion,
		OutputPerMillion: DefaultOutputPerMillion,
	}, false
}

// EstimateCost returns the estimated USD cost of one request. Reasoning
// tokens are billed as output and must be included in outputTokens.
func EstimateCost(id string, inputTokens, outputTokens int) float64 {
	m, _ := Lookup(id)
	return float64(inputTokens)/1_000_000*m.InputPerMillion +
		float64(outputTokens)/1_000_000*m.OutputPerMillion
}
