// Package mcp implements a Model Context Protocol (MCP) server for spawner
// using the mcp-go library.
//
// The server exposes the installed skill library to AI assistants over
// stdio: one tool lists categories and skills, another returns a skill's
// consolidated document. Communication uses JSON-RPC 2.0 as specified by
// the MCP standard.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"spawner/internal/config"
	"spawner/internal/distbuild"
	"spawner/internal/logging"
	"spawner/internal/skills"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverVersion is reported to MCP clients during initialization.
const serverVersion = "1.0.0"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	library   *skills.Library
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Start initializes the server and serves MCP over stdio until the client
// disconnects. It fails up front when the skill library is not installed.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	s.library = skills.NewLibrary(s.config.ExpandedInstallDir(), s.logger)
	if !s.library.Installed() {
		return fmt.Errorf("skills are not installed - run 'spawner install' first")
	}

	count, err := s.library.Count()
	if err != nil {
		return fmt.Errorf("failed to scan skill library: %w", err)
	}
	s.logger.Info("Skill library loaded", "skillCount", count)

	s.mcpServer = server.NewMCPServer(
		"spawner",
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// registerTools wires the skill library tools into the MCP server.
func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_skills",
		mcp.WithDescription("List installed skill categories and skills with their descriptions"),
		mcp.WithString("category",
			mcp.Description("Optional category name to list only that category's skills"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleListSkills)

	getTool := mcp.NewTool("get_skill",
		mcp.WithDescription("Get the full consolidated document for one skill"),
		mcp.WithString("skill",
			mcp.Required(),
			mcp.Description("Skill reference in <category>/<skill> form, e.g. web/react-state"),
		),
	)
	s.mcpServer.AddTool(getTool, s.handleGetSkill)
}

// handleListSkills lists categories and skills, optionally limited to one
// category.
func (s *Server) handleListSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")
	s.logger.Debug("list_skills called", "category", category)

	var all map[string][]skills.Skill
	if category != "" {
		categorySkills, err := s.library.Skills(category)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		all = map[string][]skills.Skill{category: categorySkills}
	} else {
		var err error
		all, err = s.library.All()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText(formatSkillListing(all)), nil
}

// handleGetSkill returns the consolidated document for one skill.
func (s *Server) handleGetSkill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("skill")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("get_skill called", "skill", ref)

	skill, err := s.library.Skill(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := distbuild.ComposeDocument(s.library, skill, s.logger)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

// formatSkillListing renders categories and skills as Markdown, one section
// per category.
func formatSkillListing(all map[string][]skills.Skill) string {
	var out strings.Builder

	categories := make([]string, 0, len(all))
	for category := range all {
		categories = append(categories, category)
	}
	// map iteration order is random; keep output stable
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Fprintf(&out, "## %s\n\n", category)
		for _, skill := range all[category] {
			if skill.Description != "" {
				fmt.Fprintf(&out, "- %s: %s\n", skill.Ref(), skill.Description)
			} else {
				fmt.Fprintf(&out, "- %s\n", skill.Ref())
			}
		}
		out.WriteString("\n")
	}

	if out.Len() == 0 {
		return "No skills installed."
	}
	return strings.TrimSpace(out.String())
}
