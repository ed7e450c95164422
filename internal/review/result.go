// Package review serves the single-shot transcript-screenshot scoring flow.
package review

// Stage score statuses the dashboard renders.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// StageScore grades one methodology stage of the reviewed conversation.
type StageScore struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// Mistake is one coachable moment found in the transcript.
type Mistake struct {
	ID           string `json:"id"`
	Stage        string `json:"stage"`
	Original     string `json:"original"`
	Reason       string `json:"reason"`
	BetterScript string `json:"better_script"`
}

// ReviewResult is the structured verdict for one reviewed screenshot.
type ReviewResult struct {
	OverallScore int          `json:"overallScore"`
	StageScores  []StageScore `json:"stageScores"`
	Mistakes     []Mistake    `json:"mistakes"`
}
