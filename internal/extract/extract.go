package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
)

// Extractor pulls plain text out of stored PDF resumes so they can be
// searched and reviewed. All work is best-effort: extraction runs after the
// upload has already succeeded and its failures are only logged.
type Extractor struct {
	Store   object.Store
	Timeout time.Duration
}

// New builds an Extractor over the given store.
func New(store object.Store) *Extractor {
	return &Extractor{Store: store, Timeout: 30 * time.Second}
}

// ExtractAsync extracts text from the named resume in the background.
func (e *Extractor) ExtractAsync(name string) {
	go func() {
		timeout := e.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := e.Extract(ctx, name)
		if err != nil {
			telemetry.Warn("extract.failed", map[string]any{
				"resume_file": name,
				"err":         err.Error(),
			})
			return
		}
		telemetry.Info("extract.completed", map[string]any{
			"resume_file": name,
			"text_bytes":  len(text),
		})
	}()
}

// Extract reads the named resume and returns its plain text.
func (e *Extractor) Extract(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := e.Store.Open(ctx, name)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract %s: read: %w", name, err)
	}

	text, err := FromBytes(raw)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return text, nil
}

// FromBytes extracts text from an in-memory PDF payload.
func FromBytes(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
