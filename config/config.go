package config

import (
	"errors"
	"strconv"

	"github.com/pitabwire/frame/config"
)

// ErrMissingAPIKey is returned when the Camb AI key is absent from the environment.
var ErrMissingAPIKey = errors.New("CAMB_AI_API_KEY is required")

// VoiceConfig holds configuration for the voice service.
type VoiceConfig struct {
	config.ConfigurationDefault
	TTSVendor          string `envDefault:"cambai"                        env:"TTS_VENDOR"`
	CambAIAPIKey       string `envDefault:""                              env:"CAMB_AI_API_KEY"`
	CambAIBaseURL      string `envDefault:"https://client.camb.ai/apis"   env:"CAMB_AI_BASE_URL"`
	PollMaxAttempts    int    `envDefault:"15"                            env:"TTS_POLL_MAX_ATTEMPTS"`
	PollInitialDelayMs int    `envDefault:"1000"                          env:"TTS_POLL_INITIAL_DELAY_MS"`
	PollMaxDelayMs     int    `envDefault:"3000"                          env:"TTS_POLL_MAX_DELAY_MS"`
	VendorTimeoutSec   int    `envDefault:"30"                            env:"TTS_VENDOR_TIMEOUT_SEC"`
	VoiceTemplateDir   string `envDefault:""                              env:"VOICE_TEMPLATE_DIR"`
	TemplateHotReload  bool   `envDefault:"false"                         env:"VOICE_TEMPLATE_HOT_RELOAD"`
	RefreshOnStartup   bool   `envDefault:"true"                          env:"VOICE_REFRESH_ON_STARTUP"`
	EnhancementSeed    int64  `envDefault:"0"                             env:"TTS_ENHANCEMENT_SEED"`
}

// VendorConfig flattens the vendor-relevant settings into the string map
// consumed by backend factories.
func (c *VoiceConfig) VendorConfig() map[string]string {
	return map[string]string{
		"cambai_api_key":  c.CambAIAPIKey,
		"base_url":        c.CambAIBaseURL,
		"timeout_sec":     strconv.Itoa(c.VendorTimeoutSec),
		"poll_attempts":   strconv.Itoa(c.PollMaxAttempts),
		"poll_initial_ms": strconv.Itoa(c.PollInitialDelayMs),
		"poll_max_ms":     strconv.Itoa(c.PollMaxDelayMs),
	}
}

// Validate checks settings that must be present before the service can start.
func (c *VoiceConfig) Validate() error {
	if c.CambAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
