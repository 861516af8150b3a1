// Package gateway talks to the hosted language model that classifies
// captures, generates plans, and answers chat and search requests. The
// model's output is never trusted: every response is fence-stripped and
// schema-validated before it can reach application state.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Classification is the structured result of one classify call.
type Classification struct {
	RootCategory string   `json:"rootCategory"`
	Project      string   `json:"project"`
	SubProject   string   `json:"subProject"`
	Type         string   `json:"type"`
	Tags         []string `json:"tags"`
	Items        []Item   `json:"items"`
}

// Item is one classified unit. Title, category and description are
// mandatory; the rest is optional.
type Item struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ActionNote  string   `json:"actionNote,omitempty"`
	TargetDate  string   `json:"targetDate,omitempty"`
}

// Plan is a generated multi-day plan.
type Plan struct {
	Name  string     `json:"name"`
	Tasks []PlanTask `json:"tasks"`
}

// PlanTask is one day-numbered entry of a plan.
type PlanTask struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
}

// ClassifyRequest carries one capture to the model together with the current
// hierarchy constraining the answer.
type ClassifyRequest struct {
	Text      string
	Image     []byte // JPEG bytes, optional
	Hierarchy map[string][]string
}

// Gateway is the single contract to the external model.
type Gateway interface {
	Classify(ctx context.Context, req ClassifyRequest) (*Classification, error)
	Plan(ctx context.Context, goal string, days int) (*Plan, error)
	Chat(ctx context.Context, message, memoryContext string) (string, error)
	Search(ctx context.Context, query, memoryContext string) (string, error)
}

// Provider generates raw model output for a prompt. Gemini and the
// OpenAI-compatible endpoint both implement it; configuration picks one.
type Provider interface {
	Generate(ctx context.Context, prompt string, image []byte) (string, error)
}

// Client implements Gateway on top of a Provider.
type Client struct {
	provider Provider
}

// New returns a Gateway backed by the given provider.
func New(p Provider) *Client {
	return &Client{provider: p}
}

func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (*Classification, error) {
	prompt, err := classifyPrompt(req)
	if err != nil {
		return nil, err
	}
	raw, err := c.provider.Generate(ctx, prompt, req.Image)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return DecodeClassification(raw)
}

func (c *Client) Plan(ctx context.Context, goal string, days int) (*Plan, error) {
	raw, err := c.provider.Generate(ctx, planPrompt(goal, days), nil)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return DecodePlan(raw)
}

func (c *Client) Chat(ctx context.Context, message, memoryContext string) (string, error) {
	raw, err := c.provider.Generate(ctx, chatPrompt(message, memoryContext), nil)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return strings.TrimSpace(StripFences(raw)), nil
}

func (c *Client) Search(ctx context.Context, query, memoryContext string) (string, error) {
	raw, err := c.provider.Generate(ctx, searchPrompt(query, memoryContext), nil)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	return strings.TrimSpace(StripFences(raw)), nil
}

// StripFences removes a wrapping markdown code fence, with or without a
// language marker. Models wrap JSON output this way often enough that every
// call shape has to tolerate it.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeClassification parses and validates a raw classify response. The raw
// payload is logged on failure for diagnosis but never surfaced to the user.
func DecodeClassification(raw string) (*Classification, error) {
	var cls Classification
	if err := json.Unmarshal([]byte(StripFences(raw)), &cls); err != nil {
		log.Printf("gateway: unparseable classification: %q", raw)
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if err := validateClassification(&cls); err != nil {
		log.Printf("gateway: invalid classification: %q", raw)
		return nil, fmt.Errorf("invalid classification: %w", err)
	}
	return &cls, nil
}

func validateClassification(cls *Classification) error {
	if cls.RootCategory == "" {
		return fmt.Errorf("missing rootCategory")
	}
	if cls.Type != "note" && cls.Type != "plan" && cls.Type != "inspiration" {
		return fmt.Errorf("bad type %q", cls.Type)
	}
	if len(cls.Items) == 0 {
		return fmt.Errorf("no items")
	}
	for i, it := range cls.Items {
		if it.Title == "" || it.Category == "" || it.Description == "" {
			return fmt.Errorf("item %d missing title/category/description", i)
		}
	}
	if cls.Project == "" {
		cls.Project = "General"
	}
	if cls.SubProject == "" {
		cls.SubProject = "General"
	}
	return nil
}

// DecodePlan parses and validates a raw plan response.
func DecodePlan(raw string) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal([]byte(StripFences(raw)), &plan); err != nil {
		log.Printf("gateway: unparseable plan: %q", raw)
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if len(plan.Tasks) == 0 {
		log.Printf("gateway: plan with no tasks: %q", raw)
		return nil, fmt.Errorf("invalid plan: no tasks")
	}
	for i, t := range plan.Tasks {
		if t.Day < 1 || t.Title == "" {
			log.Printf("gateway: invalid plan task: %q", raw)
			return nil, fmt.Errorf("invalid plan: task %d", i)
		}
	}
	return &plan, nil
}
