package config

import "time"

// Lua schema field names and globals
const (
	luaGlobalRoot      = "fridamanager"
	luaFieldUserAgent  = "user_agent"
	luaFieldWorkers    = "workers"
	luaFieldGitHub     = "github"
	luaFieldBaseURL    = "base_url"
	luaFieldRepo       = "repo"
	luaFieldToken      = "token"
	luaFieldAssets     = "assets"
	luaFieldPrefix     = "prefix"
	luaFieldPlatforms  = "platforms"
	luaFieldVersionCmd = "version_command"
)

// Limits applied while parsing.
const (
	// MaxConfigSize is the largest config file accepted.
	MaxConfigSize = 1 << 20

	// DefaultParseTimeout bounds Lua execution when the caller's context has no deadline.
	DefaultParseTimeout = 5 * time.Second

	// MaxWorkers caps the download concurrency a config may request.
	MaxWorkers = 64

	// MaxPlatforms caps the number of platform filters.
	MaxPlatforms = 100
)

// FileName is the config file name inside the cache root.
const FileName = "config.lua"
