// Package config loads and validates mush.yaml.
//
// Settings are read with Viper in layers: built-in defaults, then the user
// file at $XDG_CONFIG_HOME/mush/config.yaml, then the project's
// .mush/mush.yaml, then MUSH_* environment variables. A project file looks
// like:
//
//	version: 1
//	agents:
//	  - claude
//	  - cursor
//	min_version: 0.4.0
//	gitignore: true
//	paths:
//	  guidelines:
//	    - docs/AI.md
//	  mcp:
//	    - .zed/mcp.json
//
// [Validate] reports every problem at once:
//
//	if err := config.Validate(cfg, registry.IDs(), version.Version); err != nil {
//	    fmt.Println(err)
//	}
package config
