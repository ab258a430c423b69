// Package config loads the optional fridamanager Lua configuration.
//
// The file lives at <root>/config.lua and assigns a global fridamanager
// table. It runs in a sandboxed gopher-lua VM (no os, io, require, load or
// debug) with a read-only platform table describing the host, so a config
// can pick assets for the machine it runs on:
//
//	fridamanager = {
//	    workers = 8,
//	    github = { repo = "frida/frida" },
//	    assets = {
//	        platforms = { "android-arm64", platform.host },
//	    },
//	}
//
// A missing file yields Default(). Syntax and validation failures are
// reported as *ParseError.
package config
