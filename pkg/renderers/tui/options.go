package tui

// Theme captures optional prefixes the shell applies when printing messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the shell.
type Option func(*Shell)

// WithPromptDriver overrides the prompt driver used by the shell.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Shell) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Shell) {
		s.theme = theme
	}
}

// WithConfirmDeletes asks before running delete actions.
func WithConfirmDeletes(enabled bool) Option {
	return func(s *Shell) {
		s.confirmDeletes = enabled
	}
}

// WithRenderer selects the registry renderer used for action output.
func WithRenderer(name string) Option {
	return func(s *Shell) {
		if name != "" {
			s.renderer = name
		}
	}
}
