// Package catalog holds the static stage/trigger script library. It is
// read-only at runtime: the combat degraded path looks up a trigger's canned
// default script here, and the API serves the whole catalog to the UI.
package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Trigger is one pressable situation inside a stage.
type Trigger struct {
	Label         string `json:"label" koanf:"label"`
	Value         string `json:"value" koanf:"value"`
	ProblemType   string `json:"problem_type" koanf:"problem_type"`
	DefaultScript string `json:"default_script" koanf:"default_script"`
}

// Stage is one step of the sales methodology.
type Stage struct {
	ID       string    `json:"id" koanf:"id"`
	Name     string    `json:"name" koanf:"name"`
	Goal     string    `json:"goal" koanf:"goal"`
	Triggers []Trigger `json:"triggers" koanf:"triggers"`
}

// Catalog is an ordered, immutable set of stages.
type Catalog struct {
	stages []Stage
}

// Stages returns the ordered stage list.
func (c *Catalog) Stages() []Stage {
	return c.stages
}

// FindStage looks up a stage by id.
func (c *Catalog) FindStage(stageID string) (Stage, bool) {
	for _, s := range c.stages {
		if s.ID == stageID {
			return s, true
		}
	}
	return Stage{}, false
}

// FindTrigger looks up a trigger by stage id and trigger value.
func (c *Catalog) FindTrigger(stageID, triggerValue string) (Trigger, bool) {
	stage, ok := c.FindStage(stageID)
	if !ok {
		return Trigger{}, false
	}
	for _, t := range stage.Triggers {
		if t.Value == triggerValue {
			return t, true
		}
	}
	return Trigger{}, false
}

// Load reads a catalog from a TOML file. An empty path returns the
// compiled-in default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error loading stage catalog: %w", err)
	}

	var out struct {
		Stages []Stage `koanf:"stages"`
	}
	if err := k.Unmarshal("", &out); err != nil {
		return nil, fmt.Errorf("error unmarshalling stage catalog: %w", err)
	}
	if len(out.Stages) == 0 {
		return nil, fmt.Errorf("stage catalog %s contains no stages", path)
	}

	return &Catalog{stages: out.Stages}, nil
}

// Default returns the compiled-in six-stage methodology.
func Default() *Catalog {
	return &Catalog{stages: defaultStages}
}

var defaultStages = []Stage{
	{
		ID:   "S0",
		Name: "Build Trust",
		Goal: "Open the conversation and earn the right to ask questions",
		Triggers: []Trigger{
			{
				Label:         "Who are you?",
				Value:         "t_intro",
				ProblemType:   "ColdOpen",
				DefaultScript: "I work with teams like yours on exactly one problem. Give me ninety seconds and you can decide if it is worth more.",
			},
			{
				Label:         "Send me an email",
				Value:         "t_brushoff",
				ProblemType:   "BrushOff",
				DefaultScript: "Happy to. So the email is actually useful, what is the one number you would want it to speak to?",
			},
		},
	},
	{
		ID:   "S1",
		Name: "Surface Pain",
		Goal: "Get the prospect to name a problem in their own words",
		Triggers: []Trigger{
			{
				Label:         "We're fine as is",
				Value:         "t_no_pain",
				ProblemType:   "StatusQuo",
				DefaultScript: "Most teams I talk to are fine, right up until the quarter something slips. What would have to break for this to become urgent?",
			},
		},
	},
	{
		ID:   "S2",
		Name: "Deliver Value",
		Goal: "Connect their named pain to a concrete capability",
		Triggers: []Trigger{
			{
				Label:         "How is this different?",
				Value:         "t_differentiation",
				ProblemType:   "Differentiation",
				DefaultScript: "Fair question. The difference shows up on day thirty, not on the feature list. Can I walk you through one customer's before and after?",
			},
		},
	},
	{
		ID:   "S3",
		Name: "Build Tension",
		Goal: "Challenge the cost of the status quo",
		Triggers: []Trigger{
			{
				Label:         "Too expensive",
				Value:         "t_price",
				ProblemType:   "PriceObjection",
				DefaultScript: "Compared to what? If the current process drops one deal a quarter, the math usually runs the other way.",
			},
			{
				Label:         "Now is not a good time",
				Value:         "t_timing",
				ProblemType:   "Timing",
				DefaultScript: "Understood. When the timing is finally right, what will be true then that is not true today?",
			},
		},
	},
	{
		ID:   "S4",
		Name: "Handle Objections",
		Goal: "Resolve the stated blocker without conceding the premise",
		Triggers: []Trigger{
			{
				Label:         "Need to ask my boss",
				Value:         "t_authority",
				ProblemType:   "Authority",
				DefaultScript: "Makes sense. What would your boss push back on first, so we can answer it before the meeting?",
			},
		},
	},
	{
		ID:   "S5",
		Name: "Drive Decision",
		Goal: "Convert agreement into a scheduled next step",
		Triggers: []Trigger{
			{
				Label:         "Let me think about it",
				Value:         "t_stall",
				ProblemType:   "Stall",
				DefaultScript: "Of course. Usually 'think about it' hides one open question. Which one is it for you, so I can get you a real answer?",
			},
		},
	},
}
