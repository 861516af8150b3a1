package gateway

import (
	"encoding/json"
	"fmt"
)

func classifyPrompt(req ClassifyRequest) (string, error) {
	hierarchy, err := json.Marshal(req.Hierarchy)
	if err != nil {
		return "", fmt.Errorf("marshal hierarchy: %w", err)
	}

	return fmt.Sprintf(`You classify a personal note into structured items.

The user's category hierarchy, mapping each category to its projects:
%s

Rules:
- rootCategory must be one of the categories above.
- project should be one of that category's projects, or "General" when the
  note fits no specific project.
- type is one of: note, plan, inspiration.
- Split the note into discrete items. Every item needs title, category (a
  short icon label like "food" or "place"), and description. Add location,
  rating (number), actionNote, and targetDate (format YYYY.MM.DD) when they
  are clearly present in the note.

Respond with JSON only, no prose, in this shape:
{"rootCategory":"...","project":"...","subProject":"...","type":"note","tags":["..."],"items":[{"title":"...","category":"...","description":"..."}]}

Note:
%s`, hierarchy, req.Text), nil
}

func planPrompt(goal string, days int) string {
	return fmt.Sprintf(`Create a %d-day plan for this goal: %s

Respond with JSON only, no prose:
{"name":"...","tasks":[{"day":1,"title":"..."}]}

day is 1-based and every day from 1 to %d must appear at least once.`,
		days, goal, days)
}

func chatPrompt(message, memoryContext string) string {
	return fmt.Sprintf(`You are the user's second brain. Their stored memories:
%s

Answer the user's message conversationally, drawing on the memories where
relevant.

Message: %s`, memoryContext, message)
}

func searchPrompt(query, memoryContext string) string {
	return fmt.Sprintf(`Search the user's stored memories and synthesize an
answer to the query. Mention the matching items; say so plainly when nothing
matches.

Memories:
%s

Query: %s`, memoryContext, query)
}
