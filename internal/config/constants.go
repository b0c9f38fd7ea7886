package config

import "time"

// Lua schema globals and field names
const (
	luaGlobalInstall     = "install"
	luaFieldPrefix       = "prefix"
	luaFieldRepo         = "repo"
	luaFieldVerify       = "verify"
	luaFieldKeyring      = "keyring"
	luaFieldTimeout      = "timeout"
	luaFieldAPIBase      = "api_base"
	luaFieldDownloadBase = "download_base"
	luaFieldGitURL       = "git_url"
	luaFieldLogLevel     = "log_level"
)

const (
	// envPrefix namespaces the environment variables read by envconfig
	envPrefix = "sprint"

	// maxConfigSize bounds the size of a Lua config file
	maxConfigSize = 1 << 20

	// parseTimeout bounds Lua execution
	parseTimeout = 5 * time.Second

	// DefaultPrefix is the default install root
	DefaultPrefix = "/usr/local"

	// DefaultLogLevel is the default logrus level name
	DefaultLogLevel = "info"
)
