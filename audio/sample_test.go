package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// testLoader serves canned buffers or errors by URL.
type testLoader struct {
	sounds map[string][]float64
	errs   map[string]error
}

func (l *testLoader) Load(url string) ([]float64, error) {
	if err, ok := l.errs[url]; ok {
		return nil, err
	}
	if buf, ok := l.sounds[url]; ok {
		return buf, nil
	}
	return nil, errors.New("not found")
}

func TestAssetLoad(t *testing.T) {
	loader := &testLoader{sounds: map[string][]float64{"a.wav": {0, 1, 2}}}
	a := NewAsset("a.wav")
	if a.Ready() {
		t.Fatal("asset ready before load")
	}

	done := make(chan error, 1)
	a.Load(loader, func(buf []float64, err error) {
		if err == nil && len(buf) != 3 {
			err = errors.New("wrong buffer")
		}
		done <- err
	})
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("load never completed")
	}
	if !a.Ready() {
		t.Error("asset not ready after load")
	}
}

func TestAssetReadyConcurrent(t *testing.T) {
	loader := &testLoader{sounds: map[string][]float64{"a.wav": {0, 1, 2}}}
	a := NewAsset("a.wav")
	done := make(chan struct{})
	a.Load(loader, func([]float64, error) { close(done) })
	for {
		select {
		case <-done:
			if !a.Ready() {
				t.Fatal("asset not ready after load")
			}
			return
		default:
			// polling while the load completes must be safe
			a.Ready()
		}
	}
}

func TestAssetLoadFailure(t *testing.T) {
	loader := &testLoader{errs: map[string]error{"a.wav": errors.New("boom")}}
	a := NewAsset("a.wav")

	done := make(chan error, 1)
	a.Load(loader, func(buf []float64, err error) {
		done <- err
	})
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected load error")
		}
	case <-time.After(time.Second):
		t.Fatal("load never completed")
	}
	if a.Ready() {
		t.Error("asset ready after failed load")
	}
}

func TestDecodeWAV(t *testing.T) {
	buf, err := decodeWAV(bytes.NewReader(wavFile([]int16{0, 1000, -1000, 32000})))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(buf), 4; got != want {
		t.Fatalf("decoded %d samples, want %d", got, want)
	}
	if buf[0] != 0 {
		t.Errorf("buf[0] = %v, want 0", buf[0])
	}
	if buf[1] <= 0 || buf[2] >= 0 {
		t.Errorf("decoded signs wrong: %v", buf)
	}
}

func TestDecodeWAVEmpty(t *testing.T) {
	if _, err := decodeWAV(bytes.NewReader(wavFile(nil))); err == nil {
		t.Fatal("expected error for empty sample")
	}
}

// wavFile builds a minimal 16-bit mono PCM file.
func wavFile(samples []int16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&b, binary.LittleEndian, uint32(44100))
	binary.Write(&b, binary.LittleEndian, uint32(44100*2))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}
