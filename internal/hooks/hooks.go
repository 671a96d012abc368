// Package hooks runs user-configured shell commands after signup.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = "onboard.hooks.yml"

// LoadConfig loads the hooks configuration from the working directory.
// Returns nil if the config file doesn't exist (hooks are optional).
// Returns an error only if the file exists but cannot be parsed.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables holds the values expanded in hook commands and exported to the
// hook's environment.
type Variables struct {
	UserID    string
	CompanyID string
	Email     string
	Mode      string
	Route     string
	Invites   int
}

// VariablesFor builds hook variables from a successful submission.
func VariablesFor(o *signup.Outcome) Variables {
	v := Variables{
		Mode:    o.Mode.String(),
		Route:   o.Route,
		Invites: o.InvitesPending,
	}
	if o.Account != nil {
		v.UserID = o.Account.UserID
		v.CompanyID = o.Account.CompanyID
		v.Email = o.Account.Email
	}
	return v
}

func (v Variables) pairs() [][2]string {
	return [][2]string{
		{"user_id", v.UserID},
		{"company_id", v.CompanyID},
		{"email", v.Email},
		{"mode", v.Mode},
		{"route", v.Route},
		{"invites", strconv.Itoa(v.Invites)},
	}
}

// Execute runs a hook command and returns its output.
// Placeholders like {{company_id}} are expanded before execution and the same
// values are exported as ONBOARD_<NAME>. The account token is never passed.
// On error, returns an error message as output and nil error (graceful degradation).
// Only returns error for context cancellation.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	for _, kv := range vars.pairs() {
		cmd.Env = append(cmd.Env, "ONBOARD_"+strings.ToUpper(kv[0])+"="+kv[1])
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		output := stdout.String()
		if stderr.Len() > 0 {
			output += "\n[stderr]\n" + stderr.String()
		}
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		logger.Debug("Hook stderr: %s", stderr.String())
		output += "\n[stderr]\n" + stderr.String()
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return output, nil
}

// ExecuteAll runs hooks in order and joins their non-empty outputs.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var outputs []string
	for _, h := range hooks {
		out, err := Execute(ctx, h, workDir, vars)
		if err != nil {
			return "", err
		}
		if out != "" {
			outputs = append(outputs, out)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// RunPostSignup loads onboard.hooks.yml from workDir and runs its
// post_signup hooks. A missing file is not an error.
func RunPostSignup(ctx context.Context, workDir string, o *signup.Outcome) (string, error) {
	cfg, err := LoadConfig(workDir)
	if err != nil || cfg == nil {
		return "", err
	}
	return ExecuteAll(ctx, cfg.Hooks.PostSignup, workDir, VariablesFor(o))
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	result := command
	for _, kv := range vars.pairs() {
		result = strings.ReplaceAll(result, "{{"+kv[0]+"}}", kv[1])
	}
	return result
}
