// Package combat serves one live "what do I say next" turn: it shapes the
// chat call, runs it, recovers a TacticalCard from the free-text answer, and
// always terminates in a card, degrading instead of erroring.
package combat

// Script tone variants the UI knows how to render.
const (
	ScriptSoft       = "soft"
	ScriptChallenger = "challenger"
	ScriptDirect     = "direct"
)

// Script is one suggested line, with a delivery tone.
type Script struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Attachment is a supporting file referenced by a card.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TacticalCard is the structured suggestion shown to the salesperson.
// A successfully parsed card is passed through as the model produced it;
// only the fallback paths synthesize one.
type TacticalCard struct {
	Diagnosis string       `json:"diagnosis"`
	Tags      []string     `json:"tags"`
	Scripts   []Script     `json:"scripts"`
	Warning   string       `json:"warning"`
	Files     []Attachment `json:"files"`
}
