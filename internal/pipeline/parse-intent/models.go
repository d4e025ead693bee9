package parseintent

// IntentDescriptor is the structured result of translating a user query
// into collector calls plus presentation hints. Produced once per query,
// never mutated afterwards.
type IntentDescriptor struct {
	FunctionsToCall []string `json:"functions_to_call"`
	ResponseStyle   string   `json:"response_style"`
	Focus           string   `json:"focus"`
	Reasoning       string   `json:"reasoning"`
}
