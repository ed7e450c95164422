package llm

import "fmt"

// Setup is the salesperson's context, persisted client-side and passed in
// with every request.
type Setup struct {
	Industry    string
	ProductName string
	Role        string
}

const (
	defaultCombatUser = "user-default"
	reviewUser        = "user-review-1"
)

// BuildChatTurn shapes one combat turn into the provider's chat call. Every
// turn must carry non-empty query text: a manual query is used verbatim,
// and a trigger press synthesizes a deterministic system query from the
// stage and problem type.
func BuildChatTurn(setup Setup, stage, problemType, query, triggerValue, conversationID, userID string) ChatRequest {
	queryText := query
	if queryText == "" {
		queryText = fmt.Sprintf("[System Trigger] Stage: %s, Problem: %s", stage, problemType)
	}

	user := userID
	if user == "" {
		user = defaultCombatUser
	}

	return ChatRequest{
		Query: queryText,
		Inputs: map[string]string{
			"industry":      setup.Industry,
			"product_name":  setup.ProductName,
			"role":          setup.Role,
			"stage":         stage,
			"problem_type":  problemType,
			"trigger_value": triggerValue,
		},
		User:           user,
		ConversationID: conversationID,
	}
}

// BuildWorkflowRun shapes one review run into the provider's workflow call.
// The image is an opaque encoded payload passed through under a text input
// variable; decoding and validation belong to the upload collaborator.
func BuildWorkflowRun(setup Setup, image string) WorkflowRequest {
	return WorkflowRequest{
		Inputs: map[string]string{
			"industry": setup.Industry,
			"product":  setup.ProductName,
			"role":     setup.Role,
			"image":    image,
		},
		User: reviewUser,
	}
}
