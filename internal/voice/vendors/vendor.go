package vendors

import (
	"context"
	"errors"
)

// Vendor language codes as the TTS wire protocol numbers them.
const (
	LanguageEnglish = 1
	LanguageHindi   = 2
)

// GenderFemale is the vendor gender code retained by the catalog filter.
const GenderFemale = 2

// Voice is one entry of a vendor's voice catalog.
type Voice struct {
	ID          int
	Name        string
	Gender      int
	Age         int
	Language    int
	Description string
	IsPublished bool
}

// SynthesisRequest carries one text-to-speech job to a vendor.
type SynthesisRequest struct {
	Text     string
	VoiceID  int
	Language int
}

// Sentinel errors a vendor reports so callers can classify failures
// without parsing messages.
var (
	ErrSubmitFailed   = errors.New("tts submit failed")
	ErrPollFailed     = errors.New("tts job reported terminal failure")
	ErrPollTimeout    = errors.New("tts poll attempts exhausted")
	ErrRetrieveFailed = errors.New("tts result retrieval failed")
)

// TTSVendor synthesizes speech through a third-party voice API.
type TTSVendor interface {
	// ListVoices fetches the vendor's current voice catalog.
	ListVoices(ctx context.Context) ([]Voice, error)
	// Synthesize runs one full synthesis job and returns raw audio bytes.
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
	Close() error
}
