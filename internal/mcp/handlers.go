package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ewchang/synapse/internal/brain"
	"github.com/ewchang/synapse/internal/gateway"
	"github.com/ewchang/synapse/internal/model"
)

func (s *Server) registerTools() {
	capture := mcp.NewTool("capture_note",
		mcp.WithDescription("Classify a free-form note into structured items and store it."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The raw note text.")),
	)
	s.mcpServer.AddTool(capture, s.handleCapture)

	search := mcp.NewTool("search_memories",
		mcp.WithDescription("Search stored memories and synthesize an answer."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query.")),
	)
	s.mcpServer.AddTool(search, s.handleSearch)

	agenda := mcp.NewTool("agenda",
		mcp.WithDescription("List plan tasks and memory items due on a date."),
		mcp.WithString("date", mcp.Description("Calendar date as YYYY.MM.DD; defaults to today.")),
	)
	s.mcpServer.AddTool(agenda, s.handleAgenda)

	hierarchy := mcp.NewTool("list_hierarchy",
		mcp.WithDescription("Return the category to projects mapping."),
	)
	s.mcpServer.AddTool(hierarchy, s.handleHierarchy)
}

func (s *Server) handleCapture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := request.Params.Arguments["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("'text' parameter is required and must be a non-empty string."), nil
	}
	if s.gateway == nil {
		return mcp.NewToolResultError("No gateway API key is configured."), nil
	}

	cls, err := s.gateway.Classify(ctx, gateway.ClassifyRequest{
		Text:      text,
		Hierarchy: s.brain.PromptHierarchy(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Classification failed: %v", err)), nil
	}

	items := make([]brain.ItemParams, 0, len(cls.Items))
	for _, it := range cls.Items {
		items = append(items, brain.ItemParams{
			Title:       it.Title,
			Category:    it.Category,
			Description: it.Description,
			Location:    it.Location,
			Rating:      it.Rating,
			ActionNote:  it.ActionNote,
			TargetDate:  it.TargetDate,
		})
	}
	mem, err := s.brain.AddMemory(ctx, brain.AddMemoryParams{
		OriginalText: text,
		RootCategory: cls.RootCategory,
		Project:      cls.Project,
		SubProject:   cls.SubProject,
		Type:         cls.Type,
		Tags:         cls.Tags,
		Items:        items,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to store memory: %v", err)), nil
	}

	out, err := json.Marshal(mem)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize memory: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("'query' parameter is required and must be a non-empty string."), nil
	}
	if s.gateway == nil {
		return mcp.NewToolResultError("No gateway API key is configured."), nil
	}

	stripped := make([]model.Memory, len(s.brain.Memories))
	copy(stripped, s.brain.Memories)
	for i := range stripped {
		stripped[i].Image = nil
	}
	memoryJSON, _ := json.Marshal(stripped)

	answer, err := s.gateway.Search(ctx, query, string(memoryJSON))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}

func (s *Server) handleAgenda(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	date := now
	if raw, ok := request.Params.Arguments["date"].(string); ok && raw != "" {
		parsed, err := time.ParseInLocation(model.DateFormat, raw, time.Local)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Bad date %q, want YYYY.MM.DD.", raw)), nil
		}
		date = parsed
	}

	entries := s.brain.Agenda(now, date)
	out, err := json.Marshal(entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize agenda: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleHierarchy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(s.brain.Hierarchy())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize hierarchy: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
