package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"github.com/youpy/go-wav"
)

// Loader fetches and decodes one sample into a playable buffer. It is the
// only I/O boundary of the engine.
type Loader interface {
	Load(url string) ([]float64, error)
}

// WAVLoader reads WAV data from a local path or an http(s) URL.
type WAVLoader struct {
	Client *http.Client
}

func (l *WAVLoader) Load(url string) ([]float64, error) {
	r, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return decodeWAV(r)
}

func (l *WAVLoader) open(url string) (io.ReadCloser, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Get(url)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(url)
}

func decodeWAV(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := wav.NewReader(bytes.NewReader(data))
	var buf []float64
	for {
		samples, err := reader.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range samples {
			buf = append(buf, reader.FloatValue(sample, 0))
		}
	}
	if len(buf) == 0 {
		return nil, errors.New("no samples in file")
	}
	return buf, nil
}

// Asset owns one decoded sample buffer. It starts empty and is filled at
// most once by Load. The buffer itself is published to callers only through
// the completion callback; Ready is safe to poll from any goroutine.
type Asset struct {
	url   string
	buf   []float64
	ready atomic.Bool
}

func NewAsset(url string) *Asset {
	return &Asset{url: url}
}

// Load begins the asynchronous fetch and decode. done is called exactly
// once, from the loading goroutine, with either the decoded buffer or an
// error. There is no retry, timeout, or cancellation: a load runs to
// completion or failure.
func (a *Asset) Load(loader Loader, done func(buf []float64, err error)) {
	go func() {
		buf, err := loader.Load(a.url)
		if err != nil {
			done(nil, fmt.Errorf("load %s: %w", a.url, err))
			return
		}
		a.buf = buf
		a.ready.Store(true)
		done(buf, nil)
	}()
}

func (a *Asset) Ready() bool { return a.ready.Load() }

func (a *Asset) URL() string { return a.url }
