package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"notekeeper/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server exposing the note operations as tools.
func NewServer(svc *notes.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Notes",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List every stored note with its ID, title and content."),
		),
		handleListNotes(svc),
	)

	s.AddTool(
		mcp.NewTool("get_note",
			mcp.WithDescription("Get a specific note by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID (24-character hex string)"),
			),
		),
		handleGetNote(svc),
	)

	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note. Returns the new note including its ID."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Note title"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Note body"),
			),
		),
		handleCreateNote(svc),
	)

	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Overwrite the title and/or content of an existing note. Omitted fields keep their value."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID (24-character hex string)"),
			),
			mcp.WithString("title",
				mcp.Description("Optional: new title"),
			),
			mcp.WithString("content",
				mcp.Description("Optional: new content"),
			),
		),
		handleUpdateNote(svc),
	)

	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Permanently delete a note by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID (24-character hex string)"),
			),
		),
		handleDeleteNote(svc),
	)

	return s
}

// NoteResult represents a note in tool responses
type NoteResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func handleListNotes(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteList, err := svc.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
		}

		results := make([]NoteResult, len(noteList))
		for i, note := range noteList {
			results[i] = toResult(note)
		}
		return jsonResult(results), nil
	}
}

func handleGetNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		note, err := svc.GetByID(ctx, id)
		if err != nil {
			return toolError("get note", err), nil
		}
		return jsonResult(toResult(note)), nil
	}
}

func handleCreateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError("content is required"), nil
		}

		note, err := svc.Create(ctx, notes.CreateNoteInput{Title: &title, Content: &content})
		if err != nil {
			return toolError("create note", err), nil
		}
		return jsonResult(toResult(note)), nil
	}
}

func handleUpdateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		var input notes.UpdateNoteInput
		args := req.GetArguments()
		if title, ok := args["title"].(string); ok {
			input.Title = &title
		}
		if content, ok := args["content"].(string); ok {
			input.Content = &content
		}

		if err := svc.Update(ctx, id, input); err != nil {
			return toolError("update note", err), nil
		}
		return mcp.NewToolResultText("Note updated successfully"), nil
	}
}

func handleDeleteNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		if err := svc.Delete(ctx, id); err != nil {
			return toolError("delete note", err), nil
		}
		return mcp.NewToolResultText("Note deleted successfully"), nil
	}
}

// Helper functions

func toResult(note *notes.Note) NoteResult {
	return NoteResult{
		ID:      notes.FormatID(note.ID),
		Title:   note.Title,
		Content: note.Content,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// toolError maps domain errors to short tool messages.
func toolError(action string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, notes.ErrInvalidID):
		return mcp.NewToolResultError("invalid note ID format")
	case errors.Is(err, notes.ErrNoteNotFound):
		return mcp.NewToolResultError("note not found")
	case errors.Is(err, notes.ErrEmptyUpdate):
		return mcp.NewToolResultError("no data provided for update")
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
