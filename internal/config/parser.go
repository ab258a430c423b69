package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	logger   logging.Logger
}

// NewParser creates a config parser. A nil detector leaves the platform
// table undefined; a nil logger discards warnings.
func NewParser(detector platform.Detector, logger logging.Logger) *Parser {
	return &Parser{detector: detector, logger: logging.OrNop(logger)}
}

// Load reads and parses the config file at path. A missing file is not an
// error and yields Default().
func (p *Parser) Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Debug("no config file, using defaults", "path", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &ParseError{Message: "config path is a directory", Detail: path}
	}
	if info.Size() > MaxConfigSize {
		return nil, &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s is %d bytes, maximum is %d", path, info.Size(), MaxConfigSize),
		}
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	if len(luaCode) > MaxConfigSize {
		return nil, &ParseError{
			Message: "config too large",
			Detail:  fmt.Sprintf("%d bytes, maximum is %d", len(luaCode), MaxConfigSize),
		}
	}

	for _, f := range DetectSensitiveData(luaCode) {
		p.logger.Warn(f.Description, "line", f.Line, "preview", f.Preview,
			"hint", "set GITHUB_TOKEN in the environment instead")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultParseTimeout)
		defer cancel()
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, &ParseError{Message: "config evaluation aborted", Detail: ctx.Err().Error()}
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig reads the global fridamanager table on top of Default().
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalRoot)
	table, ok := root.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("missing or invalid '%s' table", luaGlobalRoot),
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	cfg := Default()
	if err := applyRoot(cfg, table); err != nil {
		return nil, &ParseError{Message: "invalid config", Detail: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

func applyRoot(cfg *Config, table *lua.LTable) error {
	if err := optString(table, luaFieldUserAgent, &cfg.UserAgent); err != nil {
		return err
	}

	if v := table.RawGetString(luaFieldWorkers); v != lua.LNil {
		n, ok := v.(lua.LNumber)
		if !ok || float64(n) != float64(int(n)) {
			return fmt.Errorf("%s: expected integer, got %s", luaFieldWorkers, v.Type())
		}
		cfg.Workers = int(n)
	}

	if gh, err := optTable(table, luaFieldGitHub); err != nil {
		return err
	} else if gh != nil {
		if err := optString(gh, luaFieldBaseURL, &cfg.GitHub.BaseURL); err != nil {
			return err
		}
		var repo string
		if err := optString(gh, luaFieldRepo, &repo); err != nil {
			return err
		}
		if repo != "" {
			owner, name, err := splitRepo(repo)
			if err != nil {
				return fmt.Errorf("github.repo: %w", err)
			}
			cfg.GitHub.Owner, cfg.GitHub.Repo = owner, name
		}
		if err := optString(gh, luaFieldToken, &cfg.GitHub.Token); err != nil {
			return err
		}
	}

	if assets, err := optTable(table, luaFieldAssets); err != nil {
		return err
	} else if assets != nil {
		if err := optString(assets, luaFieldPrefix, &cfg.Assets.Prefix); err != nil {
			return err
		}
		if v := assets.RawGetString(luaFieldPlatforms); v != lua.LNil {
			platforms, err := stringList("assets.platforms", v)
			if err != nil {
				return err
			}
			cfg.Assets.Platforms = platforms
		}
	}

	switch v := table.RawGetString(luaFieldVersionCmd).(type) {
	case *lua.LNilType:
	case lua.LString:
		cfg.VersionCommand = strings.Fields(string(v))
	default:
		cmd, err := stringList(luaFieldVersionCmd, v)
		if err != nil {
			return err
		}
		cfg.VersionCommand = cmd
	}

	return nil
}

// optString sets *dst when field holds a string and leaves it alone when nil.
func optString(table *lua.LTable, field string, dst *string) error {
	switch v := table.RawGetString(field).(type) {
	case *lua.LNilType:
		return nil
	case lua.LString:
		*dst = string(v)
		return nil
	default:
		return fmt.Errorf("%s: expected string, got %s", field, v.Type())
	}
}

func optTable(table *lua.LTable, field string) (*lua.LTable, error) {
	switch v := table.RawGetString(field).(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: expected table, got %s", field, v.Type())
	}
}

// stringList reads the array part of a Lua table in index order. nil
// entries (from platform.when) are skipped.
func stringList(field string, value lua.LValue) ([]string, error) {
	table, ok := value.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: expected list, got %s", field, value.Type())
	}

	type entry struct {
		index int
		value string
	}
	var entries []entry
	var bad error

	table.ForEach(func(key, v lua.LValue) {
		if bad != nil {
			return
		}
		idx, ok := key.(lua.LNumber)
		if !ok {
			bad = fmt.Errorf("%s: unexpected key %s", field, key.String())
			return
		}
		s, ok := v.(lua.LString)
		if !ok {
			bad = fmt.Errorf("%s[%s]: expected string, got %s", field, idx.String(), v.Type())
			return
		}
		entries = append(entries, entry{index: int(idx), value: string(s)})
	})
	if bad != nil {
		return nil, bad
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	return out, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
