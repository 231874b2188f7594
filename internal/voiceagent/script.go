package voiceagent

// Script is a declarative call configuration consumed by the platform.
// The platform executes it; this service only ships it.
type Script interface {
	ScriptKind() string
}

const (
	KindAssistant = "assistant"
	KindWorkflow  = "workflow"
)

// Assistant is a single-prompt conversational agent
type Assistant struct {
	Name           string       `json:"name"`
	FirstMessage   string       `json:"firstMessage,omitempty"`
	Transcriber    *Transcriber `json:"transcriber,omitempty"`
	Voice          *Voice       `json:"voice,omitempty"`
	Model          *Model       `json:"model,omitempty"`
	ClientMessages []string     `json:"clientMessages"`
	ServerMessages []string     `json:"serverMessages"`
}

func (Assistant) ScriptKind() string { return KindAssistant }

type Transcriber struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language,omitempty"`
}

type Voice struct {
	Provider        string  `json:"provider"`
	VoiceID         string  `json:"voiceId"`
	Model           string  `json:"model,omitempty"`
	Stability       float64 `json:"stability,omitempty"`
	SimilarityBoost float64 `json:"similarityBoost,omitempty"`
	Speed           float64 `json:"speed,omitempty"`
	Style           float64 `json:"style,omitempty"`
	UseSpeakerBoost bool    `json:"useSpeakerBoost,omitempty"`
}

type Model struct {
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Messages []ModelMessage `json:"messages"`
}

type ModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Workflow is a graph of nodes joined by edges with natural-language conditions
type Workflow struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (Workflow) ScriptKind() string { return KindWorkflow }

type NodeType string

const (
	NodeConversation NodeType = "conversation"
	NodeAPIRequest   NodeType = "apiRequest"
	NodeHangup       NodeType = "hangup"
)

type Node struct {
	Name                   string                  `json:"name"`
	Type                   NodeType                `json:"type"`
	IsStart                bool                    `json:"isStart,omitempty"`
	Prompt                 string                  `json:"prompt,omitempty"`
	Voice                  *Voice                  `json:"voice,omitempty"`
	VariableExtractionPlan *VariableExtractionPlan `json:"variableExtractionPlan,omitempty"`

	// apiRequest nodes only
	Method  string  `json:"method,omitempty"`
	URL     string  `json:"url,omitempty"`
	Headers *Schema `json:"headers,omitempty"`
	Body    *Schema `json:"body,omitempty"`
	Output  *Schema `json:"output,omitempty"`
	Mode    string  `json:"mode,omitempty"`
}

type VariableExtractionPlan struct {
	Output []Variable `json:"output"`
}

type Variable struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Enum        []string `json:"enum"`
}

type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
}

type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Value       string `json:"value,omitempty"`
}

type Edge struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Condition Condition `json:"condition"`
}

type Condition struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}
