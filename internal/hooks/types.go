package hooks

// Config is the top-level configuration loaded from onboard.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	// PostSignup runs once an account has been created, in order.
	PostSignup []*HookConfig `yaml:"post_signup"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
