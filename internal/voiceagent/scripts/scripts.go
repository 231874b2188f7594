// Package scripts holds the static call configurations shipped to the voice-agent platform.
package scripts

import (
	"mockly-server/internal/voiceagent"
	"strings"
)

// GeneratePath is the question-generation webhook the generator workflow calls.
const GeneratePath = "/api/vapi/generate"

// WebhookSecretHeader carries the shared secret on generate webhook requests.
const WebhookSecretHeader = "X-Voice-Agent-Secret"

// QuestionsVariable is the template variable the interviewer prompt expects.
const QuestionsVariable = "questions"

const (
	nodeStart      = "start"
	nodeGenerating = "node_1747844870295"
	nodeAPIRequest = "node_1747834912788"
	nodeThankYou   = "conversation_1747727449384"
	nodeHangup     = "hangup_1747727590982"
)

var generatorVoice = &voiceagent.Voice{
	Provider: "deepgram",
	VoiceID:  "thalia",
	Model:    "aura-2",
}

// Generator returns the workflow that interviews the user about the practice session they want
// and posts the collected variables to {publicBaseURL}/api/vapi/generate, authenticated with webhookSecret.
func Generator(publicBaseURL, webhookSecret string) voiceagent.Workflow {
	stringProp := func(value string) voiceagent.SchemaProperty {
		return voiceagent.SchemaProperty{Type: "string", Value: value}
	}

	return voiceagent.Workflow{
		Name: "Mockly",
		Nodes: []voiceagent.Node{
			{
				Name:    nodeStart,
				Type:    voiceagent.NodeConversation,
				IsStart: true,
				Prompt:  "Greet the user and help them create a new AI Interviewer.",
				Voice:   generatorVoice,
				VariableExtractionPlan: &voiceagent.VariableExtractionPlan{
					Output: []voiceagent.Variable{
						{
							Title:       "type",
							Description: "What type of the interview should it be?",
							Type:        "string",
							Enum:        []string{"Technical", "Behavioral", "Mixed"},
						},
						{
							Title:       "role",
							Description: "What role would you like to train for?",
							Type:        "string",
							Enum:        []string{},
						},
						{
							Title:       "techstack",
							Description: "A list of technologies to cover during the job interview.",
							Type:        "string",
							Enum:        []string{},
						},
						{
							Title:       "amount",
							Description: "How many questions would you like to generate?",
							Type:        "string",
							Enum:        []string{"5", "10", "15", "20"},
						},
						{
							Title:       "level",
							Description: "The job experience level.",
							Type:        "string",
							Enum:        []string{"Entry", "Junior", "Mid", "Senior"},
						},
					},
				},
			},
			{
				Name:   nodeThankYou,
				Type:   voiceagent.NodeConversation,
				Prompt: "The interview has been generated and thank the user for the call.",
				Voice:  generatorVoice,
			},
			{
				Name: nodeHangup,
				Type: voiceagent.NodeHangup,
			},
			{
				Name:   nodeAPIRequest,
				Type:   voiceagent.NodeAPIRequest,
				Method: "POST",
				URL:    strings.TrimRight(publicBaseURL, "/") + GeneratePath,
				Headers: &voiceagent.Schema{
					Type: "object",
					Properties: map[string]voiceagent.SchemaProperty{
						WebhookSecretHeader: stringProp(webhookSecret),
					},
				},
				Body: &voiceagent.Schema{
					Type: "object",
					Properties: map[string]voiceagent.SchemaProperty{
						"role":      stringProp("{{ role }}"),
						"type":      stringProp("{{ type }}"),
						"level":     stringProp("{{ level }}"),
						"techstack": stringProp("{{ techstack }}"),
						"amount":    stringProp("{{ amount }}"),
						"userid":    stringProp("{{ userid }}"),
					},
				},
				Output: &voiceagent.Schema{Type: "object", Properties: map[string]voiceagent.SchemaProperty{}},
				Mode:   "blocking",
			},
			{
				Name:   nodeGenerating,
				Type:   voiceagent.NodeConversation,
				Prompt: "Say that the Interview will be generated shortly.",
			},
		},
		Edges: []voiceagent.Edge{
			{From: nodeThankYou, To: nodeHangup, Condition: aiCondition("")},
			{From: nodeAPIRequest, To: nodeThankYou, Condition: aiCondition("")},
			{From: nodeGenerating, To: nodeAPIRequest, Condition: aiCondition("")},
			{From: nodeStart, To: nodeGenerating, Condition: aiCondition("If user provided all the required variables.")},
		},
	}
}

func aiCondition(prompt string) voiceagent.Condition {
	return voiceagent.Condition{Type: "ai", Prompt: prompt}
}

const interviewerPrompt = `You are a professional job interviewer conducting a real-time voice interview with a candidate. Your goal is to assess their qualifications, motivation, and fit for the role.

Interview Guidelines:
Follow the structured question flow:
{{questions}}

Engage naturally & react appropriately:
Listen actively to responses and acknowledge them before moving forward.
Ask brief follow-up questions if a response is vague or requires more detail.
Keep the conversation flowing smoothly while maintaining control.
Be professional, yet warm and welcoming:

Use official yet friendly language.
Keep responses concise and to the point (like in a real voice interview).
Avoid robotic phrasing. Sound natural and conversational.
Answer the candidate's questions professionally:

If asked about the role, company, or expectations, provide a clear and relevant answer.
If unsure, redirect the candidate to HR for more details.

Conclude the interview properly:
Thank the candidate for their time.
Inform them that the company will reach out soon with feedback.
End the conversation on a polite and positive note.

- Be sure to be professional and polite.
- Keep all your responses short and simple. Use official language, but be kind and welcoming.
- This is a voice conversation, so keep your responses short, like in a real conversation. Don't ramble for too long.`

// Interviewer returns the assistant that runs the interview over the {{questions}} variable.
func Interviewer() voiceagent.Assistant {
	return voiceagent.Assistant{
		Name:         "Interviewer",
		FirstMessage: "Hello! Thank you for taking the time to speak with me today. I'm excited to learn more about you and your experience.",
		Transcriber: &voiceagent.Transcriber{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "en",
		},
		Voice: &voiceagent.Voice{
			Provider:        "11labs",
			VoiceID:         "sarah",
			Stability:       0.4,
			SimilarityBoost: 0.8,
			Speed:           0.9,
			Style:           0.5,
			UseSpeakerBoost: true,
		},
		Model: &voiceagent.Model{
			Provider: "openai",
			Model:    "gpt-4",
			Messages: []voiceagent.ModelMessage{
				{Role: "system", Content: interviewerPrompt},
			},
		},
		ClientMessages: []string{},
		ServerMessages: []string{},
	}
}

// Provider serves both scripts with a fixed public base URL and webhook secret.
type Provider struct {
	PublicBaseURL string
	WebhookSecret string
}

func (p Provider) Generator() voiceagent.Script {
	return Generator(p.PublicBaseURL, p.WebhookSecret)
}

func (p Provider) Interviewer() voiceagent.Script {
	return Interviewer()
}
