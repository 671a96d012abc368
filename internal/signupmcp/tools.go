package signupmcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/onboard/internal/signup"
)

func fieldsSchema() map[string]any {
	props := make(map[string]any, len(signup.Fields))
	for _, f := range signup.Fields {
		props[string(f)] = map[string]any{"type": "string"}
	}
	return props
}

// registerTools adds validate-signup-step and create-account.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("validate-signup-step",
			mcp.WithDescription("Validate the form fields of one signup step (1-4) and return the error messages the wizard would show"),
			mcp.WithNumber("step", mcp.Required(),
				mcp.Description("Step number: 1 account, 2 profile, 3 company, 4 invites"),
			),
			mcp.WithObject("fields", mcp.Required(),
				mcp.Description("Form values keyed by field name, e.g. email, password, confirmPassword"),
				mcp.Properties(fieldsSchema()),
			),
		),
		s.handleValidateStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("create-account",
			mcp.WithDescription("Validate every step and create the company and first user in one register call"),
			mcp.WithObject("fields", mcp.Required(),
				mcp.Description("All signup form values keyed by field name"),
				mcp.Properties(fieldsSchema()),
			),
			mcp.WithArray("invites",
				mcp.Description("Team members to hold for inviting after signup"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"email": map[string]any{"type": "string"},
						"role": map[string]any{
							"type": "string",
							"enum": signup.RoleOptions(),
						},
						"name": map[string]any{"type": "string"},
					},
					"required": []string{"email", "role"},
				}),
			),
			mcp.WithString("mode",
				mcp.Description("create (default) or skip-invites"),
				mcp.Enum("create", "skip-invites"),
			),
		),
		s.handleCreateAccount,
	)
}

type validateResult struct {
	Step   int      `json:"step"`
	Name   string   `json:"name"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func aggregateFrom(args map[string]any) (*signup.Aggregate, error) {
	raw, ok := args["fields"]
	if !ok {
		return nil, errors.New("missing 'fields' parameter")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("'fields' is not an object")
	}
	a := &signup.Aggregate{}
	a.Merge(signup.PatchFromMap(m))
	return a, nil
}

// handleValidateStep runs one step's validator.
func (s *Server) handleValidateStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	stepRaw, ok := args["step"].(float64)
	if !ok {
		return mcp.NewToolResultError("'step' must be a number"), nil
	}
	step := int(stepRaw)
	if step < 1 || step > signup.NumSteps || float64(step) != stepRaw {
		return mcp.NewToolResultError(fmt.Sprintf("'step' must be an integer between 1 and %d", signup.NumSteps)), nil
	}

	a, err := aggregateFrom(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	errs := signup.ValidateStep(step, a)
	if errs == nil {
		errs = []string{}
	}
	return jsonResult(validateResult{
		Step:   step,
		Name:   signup.StepNames[step-1],
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

type createResult struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	CompanyID      string `json:"company_id,omitempty"`
	Mode           string `json:"mode"`
	InvitesPending int    `json:"invites_pending"`
	Redirect       string `json:"redirect"`
}

func parseInvites(args map[string]any) ([]signup.Invite, error) {
	raw, ok := args["invites"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.New("'invites' is not an array")
	}

	invites := make([]signup.Invite, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invite %d is not an object", i)
		}
		email, _ := m["email"].(string)
		roleStr, _ := m["role"].(string)
		name, _ := m["name"].(string)

		inv := signup.Invite{Email: email, Role: signup.Role(roleStr), Name: name}
		if errs := signup.ValidateInvite(inv); len(errs) > 0 {
			return nil, fmt.Errorf("invite %d: %s", i, strings.Join(errs, "; "))
		}
		inv.Role, _ = signup.ParseRole(roleStr)
		invites = append(invites, inv)
	}
	return invites, nil
}

// handleCreateAccount validates steps 1-3 in order and submits once.
func (s *Server) handleCreateAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	a, err := aggregateFrom(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	for step := signup.StepCredentials; step <= signup.NumSteps; step++ {
		if errs := signup.ValidateStep(step, a); len(errs) > 0 {
			return mcp.NewToolResultError(fmt.Sprintf("step %d (%s): %s", step, signup.StepNames[step-1], strings.Join(errs, "; "))), nil
		}
	}

	invites, err := parseInvites(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, inv := range invites {
		a.AddInvite(inv)
	}

	mode := signup.ModeCreate
	if m, _ := args["mode"].(string); m == signup.ModeSkipInvites.String() {
		mode = signup.ModeSkipInvites
	}

	coord := signup.NewCoordinator(signup.CoordinatorConfig{
		Accounts:     s.cfg.Accounts,
		Invites:      s.cfg.Invites,
		LandingRoute: s.cfg.LandingRoute,
		Navigator:    signup.NavigatorFunc(func(string) {}),
		// No client to redirect; record the route instead of waiting.
		AfterFunc: func(_ time.Duration, f func()) { f() },
	})

	out, err := coord.Submit(ctx, a, mode)
	if err != nil {
		return mcp.NewToolResultError(signup.ErrorMessage(err)), nil
	}
	return jsonResult(createResult{
		UserID:         out.Account.UserID,
		Email:          out.Account.Email,
		CompanyID:      out.Account.CompanyID,
		Mode:           mode.String(),
		InvitesPending: out.InvitesPending,
		Redirect:       out.Route,
	})
}
