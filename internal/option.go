package internal

import (
	"io"

	"github.com/spf13/afero"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	out    io.Writer
	logOut io.Writer
	fs     afero.Fs
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOutput sets where task results are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogOutput sets where logs are written. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}

// WithFS sets the filesystem notes are read from. Defaults to the OS
// filesystem; the watch task needs the real one.
func WithFS(fs afero.Fs) Option {
	return func(a *application) {
		a.fs = fs
	}
}
