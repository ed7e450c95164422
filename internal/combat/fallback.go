package combat

const (
	offlinePrefix  = "[offline] "
	offlineWarning = "Offline mode: the assistant could not be reached, showing the scripted default."

	parseFailDiagnosis = "Unable to parse the assistant's response"
	parseFailWarning   = "The system is recalibrating, please retry shortly"

	genericScript = "Let me make sure I understand your concern before I answer that."

	rawPreviewLimit = 100
)

// offlineCard is the degraded-mode card served when the provider call
// fails. The script comes from the trigger's canned default when the
// catalog knows the trigger, so a dead network still yields a usable line.
func (o *Orchestrator) offlineCard(req Request) TacticalCard {
	subject := req.Query
	if subject == "" {
		subject = req.ProblemType
	}

	content := genericScript
	if trigger, ok := o.catalog.FindTrigger(req.Stage, req.TriggerValue); ok && trigger.DefaultScript != "" {
		content = trigger.DefaultScript
	}

	return TacticalCard{
		Diagnosis: offlinePrefix + subject,
		Tags:      []string{"#offline"},
		Scripts:   []Script{{Type: ScriptSoft, Content: content}},
		Warning:   offlineWarning,
		Files:     []Attachment{},
	}
}

// parseFallbackCard is served when the provider answered but no JSON could
// be recovered. The raw answer's head is kept so the salesperson still sees
// what the model said.
func parseFallbackCard(raw string) TacticalCard {
	return TacticalCard{
		Diagnosis: parseFailDiagnosis,
		Tags:      []string{"#Error"},
		Scripts:   []Script{{Type: ScriptSoft, Content: truncate(raw, rawPreviewLimit) + "..."}},
		Warning:   parseFailWarning,
		Files:     []Attachment{},
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
