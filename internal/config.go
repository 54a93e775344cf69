package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/cardservice"
	"github.com/starford/folio/internal/layout"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/pagination"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Assets     AssetsConfig      `yaml:"assets"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
	Layout     layout.Metrics    `yaml:"layout"`
	Typography models.Typography `yaml:"typography"`
	Tuning     pagination.Tuning `yaml:"tuning"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := validateLayout(c.Layout); err != nil {
		return err
	}
	if err := validateTypography(c.Typography); err != nil {
		return err
	}
	return validateTuning(c.Tuning)
}

// Defaults converts the configuration into the service-layer defaults.
func (c *Config) Defaults() cardservice.Defaults {
	return cardservice.Defaults{
		Metrics:    c.Layout,
		Typography: c.Typography,
		Tuning:     c.Tuning,
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AssetsConfig holds the path to the uploaded-images directory.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the assets configuration.
func (c *AssetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SQLiteConfig holds the image-registry database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

func validateLayout(m layout.Metrics) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ContentWidth, validation.Required, validation.Min(1.0)),
		validation.Field(&m.ContentHeight, validation.Required, validation.Min(1.0)),
		validation.Field(&m.MaxImageHeight, validation.Required, validation.Min(1.0)),
		validation.Field(&m.BaseCharWidthEm, validation.Required, validation.Min(0.1)),
		validation.Field(&m.DefaultImageRatio, validation.Required, validation.Min(0.01)),
	)
}

func validateTypography(t models.Typography) error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.FontSize, validation.Required, validation.Min(1.0)),
		validation.Field(&t.LineHeight, validation.Required, validation.Min(0.5)),
		validation.Field(&t.ParagraphSpacing, validation.Min(0.0)),
		validation.Field(&t.LetterSpacing, validation.Min(0.0)),
	)
}

func validateTuning(t pagination.Tuning) error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.MinProgress, validation.Required, validation.Min(1)),
		validation.Field(&t.WindowRatio, validation.Required, validation.Min(0.01), validation.Max(1.0)),
		validation.Field(&t.WindowCap, validation.Required, validation.Min(1)),
		validation.Field(&t.WasteTolerance, validation.Required, validation.Min(0.1), validation.Max(1.0)),
		validation.Field(&t.EarlyStop, validation.Required, validation.Min(0.5), validation.Max(1.0)),
		validation.Field(&t.SnapDistance, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Assets: AssetsConfig{
			Dir: "./assets",
		},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Layout:     layout.DefaultMetrics(),
		Typography: layout.DefaultTypography(),
		Tuning:     pagination.DefaultTuning(),
	}
}
