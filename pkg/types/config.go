// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds HTTP settings shared by every request to the service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves requests to the
	// transport defaults.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "datafix/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429. Zero sends each
	// request exactly once.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ClientConfig holds settings for talking to the conversion service.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// ServerURL is the base URL that /upload and /feedback hang off.
	ServerURL string `json:"server_url" yaml:"server_url"`

	// Token is an optional bearer token sent as the Authorization header.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// OutputConfig controls where downloaded results are written.
type OutputConfig struct {
	// Dir is the directory generated files are saved into.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// StoreConfig holds settings for the local preference and history store.
type StoreConfig struct {
	// Dir contains datafix.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// UploadConfig holds settings for the upload command.
type UploadConfig struct {
	// Parallel bounds how many files are submitted at once.
	Parallel int `json:"parallel" yaml:"parallel" mapstructure:"parallel"`
}

// ServerConfig locates the conversion service.
type ServerConfig struct {
	URL string `json:"url" yaml:"url" mapstructure:"url"`
}

// Config is the datafix.yaml layout. Keys match the command-line flag
// bindings (server.url, http.timeout, output.dir, ...).
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	HTTP   HTTPConfig   `json:"http" yaml:"http" mapstructure:"http"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	State  StoreConfig  `json:"state" yaml:"state" mapstructure:"state"`
	Upload UploadConfig `json:"upload" yaml:"upload" mapstructure:"upload"`

	// Token overrides the token found in the secrets directory.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`
}

// Client returns the service client settings using token for auth.
func (c Config) Client(token string) ClientConfig {
	return ClientConfig{
		HTTPConfig: c.HTTP,
		ServerURL:  c.Server.URL,
		Token:      token,
	}
}
