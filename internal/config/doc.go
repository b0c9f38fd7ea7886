// Package config assembles the installer settings.
//
// Settings come from four layers, each overriding the one before:
//
//  1. Built-in defaults (Defaults)
//  2. An optional Lua file, by default $XDG_CONFIG_HOME/sprint/install.lua
//  3. SPRINT_* environment variables (and GITHUB_TOKEN)
//  4. Command-line flags, applied by the caller
//
// # Lua file
//
// The file runs in a sandboxed gopher-lua VM. The os, io and debug libraries
// are not loaded, and code loading functions (require, dofile, loadfile,
// load, loadstring) are removed. A read-only "platform" table describes the
// host, so a file can choose values per platform:
//
//	install = {
//	  prefix  = platform.is_macos and "/opt/homebrew" or "/usr/local",
//	  verify  = true,
//	  timeout = "45s",
//	}
//
// Recognized keys of the install table are prefix, repo, verify, keyring,
// timeout (seconds or a duration string), api_base, download_base, git_url
// and log_level. Unknown keys are a *ParseError, as is a file that does not
// define the install table.
//
// Files are limited to maxConfigSize bytes and parsing is bounded by
// parseTimeout unless the caller's context ends sooner.
//
// # Environment
//
// Environment variables are read with envconfig using the SPRINT prefix:
// SPRINT_PREFIX, SPRINT_REPO, SPRINT_VERIFY, SPRINT_KEYRING, SPRINT_TIMEOUT,
// SPRINT_API_BASE, SPRINT_DOWNLOAD_BASE, SPRINT_GIT_URL and SPRINT_LOG_LEVEL.
// The access token is read from SPRINT_GITHUB_TOKEN, then GITHUB_TOKEN.
package config
