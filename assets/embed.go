package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed sheets/*.png sounds/*.wav
var assetsFS embed.FS

const sampleRate = 44100

var (
	imagesMu sync.Mutex
	images   = map[string]*ebiten.Image{}

	audioOnce sync.Once
	audioCtx  *audio.Context
)

// LoadImage loads an image by assets-relative path and caches it. Files on
// disk under assets/ win over the embedded copies.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty image path")
	}

	imagesMu.Lock()
	img, ok := images[clean]
	imagesMu.Unlock()
	if ok {
		return img, nil
	}

	b, err := LoadFile(clean)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	img = ebiten.NewImageFromImage(decoded)

	imagesMu.Lock()
	images[clean] = img
	imagesMu.Unlock()
	return img, nil
}

// ForgetImages drops the image cache so edited sheets are picked up again.
func ForgetImages() {
	imagesMu.Lock()
	images = map[string]*ebiten.Image{}
	imagesMu.Unlock()
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if b, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", path, err)
	}
	return b, nil
}

// LoadAudioPlayer loads a sound and creates a player on the shared audio
// context. The context is created on first use.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	audioOnce.Do(func() {
		audioCtx = audio.NewContext(sampleRate)
	})

	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	if strings.HasSuffix(clean, ".wav") {
		stream, err := wav.DecodeWithSampleRate(audioCtx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return audioCtx.NewPlayer(stream)
	}

	return audioCtx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
