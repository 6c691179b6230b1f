// Package config defines the settings used by hackatime-alarm commands and
// provides helpers to load, validate and save them in YAML format.
//
// Load reads the YAML file through viper so that every key can be overridden
// by a HACKATIME_ALARM_* environment variable (HACKATIME_ALARM_API_KEY,
// HACKATIME_ALARM_STORAGE_DRIVER, ...). Save writes the file with yaml.v3.
package config
