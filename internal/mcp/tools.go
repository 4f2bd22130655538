package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/health"
	"github.com/claude/fitfriend/internal/models"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List workout sessions, newest first. Returns name, date, duration, calories, exercises, and completion status."),
	mcp.WithString("status", mcp.Description("Filter by completion status. Defaults to 'all'."), mcp.Enum("all", "completed", "planned")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get the current progress snapshot: workouts completed, total and average calories, minutes this week vs last week, days active, and current streak."),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Record a workout session. Defaults to today's date and completed status."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name (e.g. 'Morning Run')")),
	mcp.WithString("description", mcp.Description("Optional description")),
	mcp.WithNumber("duration", mcp.Description("Duration in minutes. Defaults to 30.")),
	mcp.WithNumber("calories", mcp.Description("Calories burned. Defaults to 0.")),
	mcp.WithString("date", mcp.Description("Session date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithBoolean("completed", mcp.Description("Whether the session is already done. Defaults to true.")),
)

var toolCompleteWorkout = mcp.NewTool("complete_workout",
	mcp.WithDescription("Mark a planned workout as completed. Returns the updated stats snapshot."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout session ID")),
)

var toolGenerateWorkout = mcp.NewTool("generate_workout",
	mcp.WithDescription("Generate an AI workout suggestion tailored to a fitness level, goal, and time budget. Returns a structured workout with exercises."),
	mcp.WithString("fitness_level", mcp.Description("Beginner, Intermediate, or Advanced. Defaults to Beginner.")),
	mcp.WithString("goal", mcp.Description("Training goal (e.g. 'Weight loss', 'Muscle gain'). Defaults to general fitness.")),
	mcp.WithString("preferences", mcp.Description("Free-form preferences or constraints (e.g. 'no equipment')")),
	mcp.WithNumber("duration", mcp.Description("Target duration in minutes. Defaults to 30.")),
	mcp.WithString("focus", mcp.Description("Body focus area (e.g. 'Upper body', 'Core'). Defaults to full body.")),
)

var toolCalculateTDEE = mcp.NewTool("calculate_tdee",
	mcp.WithDescription("Calculate BMR and total daily energy expenditure via Mifflin-St Jeor, with calorie targets for weight loss and gain."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kilograms")),
	mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in centimeters")),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
	mcp.WithString("gender", mcp.Required(), mcp.Description("male or female"), mcp.Enum("male", "female")),
	mcp.WithString("activity_level", mcp.Description("Activity level. Defaults to 'moderate'."), mcp.Enum("sedentary", "light", "moderate", "active", "veryActive")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "all")

	sessions, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if status != "all" {
		wantCompleted := status == "completed"
		filtered := make([]models.WorkoutSession, 0, len(sessions))
		for _, s := range sessions {
			if s.Completed == wantCompleted {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.Stats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	date := time.Now()
	if dateStr := req.GetString("date", ""); dateStr != "" {
		date, err = parseFlexTime(dateStr)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	session := models.WorkoutSession{
		Name:            name,
		Description:     req.GetString("description", ""),
		Date:            date,
		DurationMinutes: req.GetInt("duration", 30),
		CaloriesBurned:  req.GetInt("calories", 0),
		Exercises:       []models.Exercise{},
		Completed:       req.GetBool("completed", true),
		CreatedAt:       time.Now(),
	}

	logged, err := h.ds.LogWorkout(ctx, session)
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("logging workout failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logged)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) completeWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	snap, err := h.ds.CompleteWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp complete_workout", "error", err)
		return mcp.NewToolResultError("completing workout failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) generateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	genReq := genai.GenerateRequest{
		FitnessLevel:    req.GetString("fitness_level", ""),
		Preferences:     req.GetString("preferences", ""),
		DurationMinutes: req.GetInt("duration", 0),
		Focus:           req.GetString("focus", ""),
	}
	if goal := req.GetString("goal", ""); goal != "" {
		genReq.Goals = []string{goal}
	}

	workout, err := h.ds.GenerateWorkout(ctx, genReq)
	if err != nil {
		h.log.Error("mcp generate_workout", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) calculateTDEE(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	height, err := req.RequireFloat("height")
	if err != nil {
		return mcp.NewToolResultError("height parameter is required"), nil
	}
	age, err := req.RequireInt("age")
	if err != nil {
		return mcp.NewToolResultError("age parameter is required"), nil
	}
	gender, err := req.RequireString("gender")
	if err != nil {
		return mcp.NewToolResultError("gender parameter is required"), nil
	}

	level := health.ActivityLevel(req.GetString("activity_level", ""))

	tdee, err := health.TDEE(weight, height, age, health.Gender(gender), level)
	if err != nil {
		return mcp.NewToolResultError("calculation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(tdee)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
