// Package config loads boardd settings from an optional YAML file and
// BOARD_-prefixed environment variables, then validates them.
package config
