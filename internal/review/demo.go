package review

// DemoResult is the fixed illustrative verdict served when no provider
// credentials are configured. It must not depend on the input: the
// no-credentials state is a demo mode, and tests rely on two calls with
// different images producing byte-identical JSON.
func DemoResult() *ReviewResult {
	return &ReviewResult{
		OverallScore: 72,
		StageScores: []StageScore{
			{ID: "S0", Name: "Build Trust", Score: 90, Status: StatusSuccess},
			{ID: "S1", Name: "Surface Pain", Score: 85, Status: StatusSuccess},
			{ID: "S2", Name: "Deliver Value", Score: 60, Status: StatusWarning},
			{ID: "S3", Name: "Build Tension", Score: 40, Status: StatusError},
			{ID: "S4", Name: "Handle Objections", Score: 70, Status: StatusWarning},
			{ID: "S5", Name: "Drive Decision", Score: 0, Status: StatusWarning},
		},
		Mistakes: []Mistake{
			{
				ID:           "m1",
				Stage:        "S3 Build Tension",
				Original:     "The customer said things are fine right now, so I said sorry for the interruption and hung up.",
				Reason:       "Gave up too early and never challenged the status quo bias [DEMO DATA].",
				BetterScript: "I hear that things run smoothly today. Out of curiosity, if regulations shifted six months from now, does the current process have a plan B?",
			},
		},
	}
}
