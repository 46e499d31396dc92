package persistence

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Manager handles snapshot save/load under one directory
type Manager struct {
	basePath string
	runID    string
}

// NewManager creates a manager with the given base directory and a fresh run ID
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath, runID: uuid.NewString()}
}

// RunID identifies this run's snapshots
func (m *Manager) RunID() string {
	return m.runID
}

// FilePath returns the snapshot path for a generation
func (m *Manager) FilePath(generation int) string {
	return filepath.Join(m.basePath, fmt.Sprintf("%s-%06d.toml", m.runID, generation))
}

// ImagePath returns the PNG path for a generation
func (m *Manager) ImagePath(generation int) string {
	return filepath.Join(m.basePath, fmt.Sprintf("%s-%06d.png", m.runID, generation))
}

// Save writes a snapshot to disk and returns its path
func (m *Manager) Save(dto SnapshotDTO) (string, error) {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return "", err
	}

	path := m.FilePath(dto.Generation)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := toml.NewEncoder(w).Encode(dto); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, f.Close()
}

// SaveImage writes an RGBA buffer as PNG and returns its path
func (m *Manager) SaveImage(generation int, pixels []byte, width, height int) (string, error) {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return "", err
	}
	path := m.ImagePath(generation)
	return path, WritePNG(path, pixels, width, height)
}

// Load reads a snapshot from any path
func Load(path string) (SnapshotDTO, error) {
	var dto SnapshotDTO
	if _, err := toml.DecodeFile(path, &dto); err != nil {
		return dto, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return dto, nil
}

// WritePNG encodes a premultiplied RGBA buffer of 4*width*height bytes
func WritePNG(path string, pixels []byte, width, height int) error {
	if len(pixels) != 4*width*height {
		return fmt.Errorf("png %s: buffer holds %d bytes, want %d", path, len(pixels), 4*width*height)
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
