package transcriber

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/xptea/VWisper/encoder"
	"github.com/xptea/VWisper/log"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// Default style prompt: nudges whisper toward clean punctuation and away
// from transcribing filler sounds. Quality knob only.
const defaultPrompt = "Transcribe the spoken words with natural punctuation. Omit filler sounds like um and uh."

type GroqConfig struct {
	APIKey   string
	Model    string // default distil-whisper-large-v3-en
	Language string // default en
	Prompt   string // style guidance; defaults to defaultPrompt
	URL      string // override for tests
}

// Groq submits whisper transcription requests to the Groq API.
type Groq struct {
	cfg    GroqConfig
	client *TracedClient
}

func NewGroq(cfg GroqConfig) *Groq {
	if cfg.Model == "" {
		cfg.Model = "distil-whisper-large-v3-en"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.URL == "" {
		cfg.URL = defaultGroqURL
	}
	return &Groq{cfg: cfg, client: NewTracedClient()}
}

func (g *Groq) Name() string { return "groq" }

// Warm pre-establishes the TLS session in the background.
func (g *Groq) Warm() {
	go g.client.Warm(g.cfg.URL)
}

func (g *Groq) Transcribe(payload []byte, format string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrMissingCredential
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="audio.`+format+`"`)
	header.Set("Content-Type", encoder.Format(format).MIMEType())
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", &GatewayError{Message: err.Error()}
	}
	if _, err := part.Write(payload); err != nil {
		return "", &GatewayError{Message: err.Error()}
	}

	writer.WriteField("model", g.cfg.Model)
	writer.WriteField("response_format", "text")
	writer.WriteField("language", g.cfg.Language)
	writer.WriteField("temperature", "0")
	if g.cfg.Prompt != "" {
		writer.WriteField("prompt", g.cfg.Prompt)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, g.cfg.URL, &body)
	if err != nil {
		return "", &GatewayError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", &GatewayError{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &GatewayError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(resp.Body)),
		}
	}

	log.RoundTrip(g.Name(), time.Since(start), resp.Metrics.TTFB, resp.Metrics.TLS, resp.Metrics.ConnReused)
	return strings.TrimSpace(string(resp.Body)), nil
}
