package config

// AppConfig describes the wrapped application.
type AppConfig struct {
	// Command is the application's argv. The session layer substitutes
	// ConfigPlaceholder with the working-tree path, or appends the path when
	// no argument contains it. An empty command must be supplied on the
	// command line instead.
	Command []string
	// ConfigPlaceholder is the token inside Command that stands for the
	// working-tree path.
	ConfigPlaceholder string
}
