package transcriber

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribeMissingCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server without a credential")
	}))
	defer srv.Close()

	g := NewGroq(GroqConfig{URL: srv.URL})
	_, err := g.Transcribe([]byte("payload"), "wav")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("err = %v, want ErrMissingCredential", err)
	}
}

func TestTranscribeSuccess(t *testing.T) {
	var gotAuth, gotModel, gotLang, gotFormat, gotRespFormat, gotPrompt string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotLang = r.FormValue("language")
		gotRespFormat = r.FormValue("response_format")
		gotPrompt = r.FormValue("prompt")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFormat = header.Header.Get("Content-Type")
		gotFile, _ = io.ReadAll(file)

		io.WriteString(w, "  hello from the service \n")
	}))
	defer srv.Close()

	g := NewGroq(GroqConfig{APIKey: "test-key", Language: "tr", URL: srv.URL})
	text, err := g.Transcribe([]byte("fake-wav-bytes"), "wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if text != "hello from the service" {
		t.Errorf("text = %q, want trimmed response", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotModel != "distil-whisper-large-v3-en" {
		t.Errorf("model = %q, want default", gotModel)
	}
	if gotLang != "tr" {
		t.Errorf("language = %q", gotLang)
	}
	if gotRespFormat != "text" {
		t.Errorf("response_format = %q", gotRespFormat)
	}
	if gotFormat != "audio/wav" {
		t.Errorf("file content type = %q", gotFormat)
	}
	if gotPrompt != defaultPrompt {
		t.Errorf("prompt = %q, want the default style prompt", gotPrompt)
	}
	if string(gotFile) != "fake-wav-bytes" {
		t.Errorf("file body = %q", gotFile)
	}
}

func TestTranscribeGatewayStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid API Key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGroq(GroqConfig{APIKey: "bad-key", URL: srv.URL})
	_, err := g.Transcribe([]byte("payload"), "wav")

	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if ge.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ge.Status)
	}
	if ge.Message == "" {
		t.Error("gateway error carries no body")
	}
}

func TestTranscribeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := NewGroq(GroqConfig{APIKey: "key", URL: srv.URL})
	_, err := g.Transcribe([]byte("payload"), "wav")

	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if ge.Status != 0 {
		t.Errorf("transport failure status = %d, want 0", ge.Status)
	}
}

func TestTranscribeNoRetry(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGroq(GroqConfig{APIKey: "key", URL: srv.URL})
	if _, err := g.Transcribe([]byte("payload"), "wav"); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want exactly 1", requests)
	}
}
