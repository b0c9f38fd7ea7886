package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/kelseyhightower/envconfig"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

// Loader merges defaults, the Lua config file and the environment.
type Loader struct {
	parser *Parser
	logger logging.Logger
}

// NewLoader creates a Loader. The detector feeds the Lua platform table.
func NewLoader(detector platform.Detector, logger logging.Logger) *Loader {
	return &Loader{
		parser: NewParser(detector),
		logger: logging.OrNop(logger),
	}
}

// Load returns validated settings.
//
// An empty path selects DefaultPath, which may be absent. An explicit path
// must exist.
func (l *Loader) Load(ctx context.Context, path string) (*Settings, error) {
	s := Defaults()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			l.logger.Debug("no default config location", "error", err)
		}
		path = p
	}

	if path != "" {
		if err := l.applyFile(ctx, path, explicit, s); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, s); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Loader) applyFile(ctx context.Context, path string, explicit bool, s *Settings) error {
	data, err := readConfigFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("no config file", "path", path)
			return nil
		}
		return fmt.Errorf("load config %s: %w", path, err)
	}

	for _, f := range DetectSensitiveData(string(data)) {
		l.logger.Warn("config file may contain a secret; use GITHUB_TOKEN instead",
			"path", path, "line", f.Line, "kind", f.PatternName, "preview", f.Preview)
	}

	o, err := l.parser.ParseString(ctx, string(data))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return perr
		}
		return fmt.Errorf("load config %s: %w", path, err)
	}

	o.Apply(s)
	s.File = path
	l.logger.Debug("applied config file", "path", path)
	return nil
}
