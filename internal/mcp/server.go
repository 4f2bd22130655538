package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitFriend", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitFriend workout tracking server. Log workouts, check progress stats and streaks, generate AI workout suggestions, and run health calculators."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolCompleteWorkout, Handler: h.completeWorkout},
		server.ServerTool{Tool: toolGenerateWorkout, Handler: h.generateWorkout},
		server.ServerTool{Tool: toolCalculateTDEE, Handler: h.calculateTDEE},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentActivity, Handler: h.recentActivity},
		server.ServerResource{Resource: resStatsSnapshot, Handler: h.statsSnapshot},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentActivity = mcp.NewResource(
	"fitfriend://recent_activity",
	"Recent Activity",
	mcp.WithResourceDescription("Workout sessions from the last 14 days, completed and planned"),
	mcp.WithMIMEType("application/json"),
)

var resStatsSnapshot = mcp.NewResource(
	"fitfriend://stats_snapshot",
	"Stats Snapshot",
	mcp.WithResourceDescription("Current progress statistics: completed workouts, calories, weekly minutes, active days, and streak"),
	mcp.WithMIMEType("application/json"),
)
