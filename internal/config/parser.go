package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/sprint-install/internal/platform"
)

// Overrides holds the settings a Lua config file assigned.
// A nil field was not set by the file.
type Overrides struct {
	Prefix       *string
	Repo         *string
	Verify       *bool
	Keyring      *string
	Timeout      *time.Duration
	APIBase      *string
	DownloadBase *string
	GitURL       *string
	LogLevel     *string
}

// Apply copies every set field onto s.
func (o *Overrides) Apply(s *Settings) {
	if o == nil || s == nil {
		return
	}
	setString(&s.Prefix, o.Prefix)
	setString(&s.Repo, o.Repo)
	setString(&s.Keyring, o.Keyring)
	setString(&s.APIBase, o.APIBase)
	setString(&s.DownloadBase, o.DownloadBase)
	setString(&s.GitURL, o.GitURL)
	setString(&s.LogLevel, o.LogLevel)
	if o.Verify != nil {
		s.Verify = *o.Verify
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Parser evaluates Lua config files with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform table undefined.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseString evaluates Lua config code.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Overrides, error) {
	if len(luaCode) > maxConfigSize {
		return nil, &ParseError{
			Message: "config too large",
			Detail:  fmt.Sprintf("%d bytes exceeds limit of %d", len(luaCode), maxConfigSize),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, parseTimeout)
	defer cancel()

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, &ParseError{
				Message: "config evaluation did not finish",
				Detail:  ctx.Err().Error(),
			}
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	return extractOverrides(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Path    string // Config file, when parsed from disk
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractOverrides reads the global install table from a Lua state.
func extractOverrides(L *lua.LState) (*Overrides, error) {
	val := L.GetGlobal(luaGlobalInstall)
	table, ok := val.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid 'install' table",
			Detail:  fmt.Sprintf("expected table, got %s", val.Type()),
		}
	}

	o := &Overrides{}
	var problems []string
	fail := func(err error) {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	table.ForEach(func(key, value lua.LValue) {
		name, ok := key.(lua.LString)
		if !ok {
			problems = append(problems, fmt.Sprintf("unexpected %s key %s", key.Type(), key.String()))
			return
		}

		field := string(name)
		var err error
		switch field {
		case luaFieldPrefix:
			o.Prefix, err = stringValue(field, value)
		case luaFieldRepo:
			o.Repo, err = stringValue(field, value)
		case luaFieldKeyring:
			o.Keyring, err = stringValue(field, value)
		case luaFieldAPIBase:
			o.APIBase, err = stringValue(field, value)
		case luaFieldDownloadBase:
			o.DownloadBase, err = stringValue(field, value)
		case luaFieldGitURL:
			o.GitURL, err = stringValue(field, value)
		case luaFieldLogLevel:
			o.LogLevel, err = stringValue(field, value)
		case luaFieldVerify:
			o.Verify, err = boolValue(field, value)
		case luaFieldTimeout:
			o.Timeout, err = durationValue(field, value)
		default:
			err = fmt.Errorf("unknown field %q", field)
		}
		fail(err)
	})

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, &ParseError{
			Message: "invalid 'install' table",
			Detail:  strings.Join(problems, "; "),
		}
	}

	return o, nil
}

func stringValue(field string, v lua.LValue) (*string, error) {
	s, ok := v.(lua.LString)
	if !ok {
		return nil, fmt.Errorf("%s: expected string, got %s", field, v.Type())
	}
	str := string(s)
	return &str, nil
}

func boolValue(field string, v lua.LValue) (*bool, error) {
	b, ok := v.(lua.LBool)
	if !ok {
		return nil, fmt.Errorf("%s: expected boolean, got %s", field, v.Type())
	}
	val := bool(b)
	return &val, nil
}

// durationValue accepts a number of seconds or a Go duration string.
func durationValue(field string, v lua.LValue) (*time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case lua.LNumber:
		d = time.Duration(float64(val) * float64(time.Second))
	case lua.LString:
		parsed, err := time.ParseDuration(string(val))
		if err != nil {
			return nil, fmt.Errorf("%s: %v", field, err)
		}
		d = parsed
	default:
		return nil, fmt.Errorf("%s: expected number or duration string, got %s", field, v.Type())
	}
	if d <= 0 {
		return nil, fmt.Errorf("%s: must be positive", field)
	}
	return &d, nil
}

// readConfigFile reads path, refusing files over maxConfigSize.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigSize {
		return nil, &ParseError{
			Path:    path,
			Message: "config too large",
			Detail:  fmt.Sprintf("%d bytes exceeds limit of %d", info.Size(), maxConfigSize),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return data, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	parseErr, ok := err.(*ParseError)
	if !ok {
		return err.Error()
	}

	prefix := parseErr.Message
	if parseErr.Path != "" {
		prefix = parseErr.Path + ": " + prefix
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", prefix, parseErr.Detail)
	}
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", prefix, detail)
}
