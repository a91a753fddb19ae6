package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ymurata/kaiyaku-form/log"
)

// builtinFamily is the renderer's core font, used when no remote font could
// be fetched. It cannot render Japanese glyphs.
const builtinFamily = "Helvetica"

// Font is a registered or builtin PDF font. Nil Data marks the builtin.
type Font struct {
	Name string
	Data []byte
}

func (f Font) Builtin() bool {
	return f.Data == nil
}

// FontLoader fetches a Japanese-glyph-capable TTF from its sources in order,
// caching the first success. A failed attempt is retried on the next load.
type FontLoader struct {
	urls []string
	http *http.Client

	mu     sync.Mutex
	cached *Font
}

func NewFontLoader(urls ...string) *FontLoader {
	sources := make([]string, 0, len(urls))
	for _, url := range urls {
		if url != "" {
			sources = append(sources, url)
		}
	}
	return &FontLoader{
		urls: sources,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load returns the embeddable font, falling back to the builtin when every
// source fails. Callers should warn the user on a builtin result: non-Latin
// text will not render.
func (l *FontLoader) Load(ctx context.Context) Font {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return *l.cached
	}

	for _, url := range l.urls {
		data, err := l.fetch(ctx, url)
		if err != nil {
			log.Errorf("font.load: %s: %s", url, err)
			continue
		}
		font := Font{Name: "NotoSansJP", Data: data}
		l.cached = &font
		log.Infof("font.load: loaded %d bytes from %s", len(data), url)
		return font
	}

	log.Warn("font.load: all sources failed, using the built-in font (non-Latin glyphs will not render)")
	return Font{Name: builtinFamily}
}

func (l *FontLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !looksLikeTTF(data) {
		return nil, errors.New("response is not a TTF file")
	}
	return data, nil
}

// looksLikeTTF checks the sfnt magic so an HTML error page never gets
// registered as a font.
func looksLikeTTF(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true", "OTTO", "ttcf":
		return true
	}
	return false
}
