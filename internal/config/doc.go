// Package config loads analysisforms settings from a YAML file, the
// ANALYSISFORMS_* environment and built-in defaults using viper.
package config
