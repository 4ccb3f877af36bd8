package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrInvalidFormat = errors.New("invalid image format")
)

var validExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Store keeps uploaded images on the local filesystem under a single
// directory and serves them by URL path.
type Store struct {
	dir     string
	urlBase string
}

type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func NewStore(dir, urlBase string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir, urlBase: strings.TrimSuffix(urlBase, "/")}, nil
}

// Save validates the content type and writes the file under a
// timestamp-random name so uploads never collide or overwrite.
func (s *Store) Save(contentType string, r io.Reader) (*Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	ext := strings.TrimPrefix(contentType, "image/")
	if !validExtensions[ext] {
		return nil, ErrInvalidFormat
	}

	rand := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), rand, ext)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &Image{
		Filename: filename,
		URL:      s.urlBase + "/" + filename,
	}, nil
}

func (s *Store) Remove(filename string) error {
	// Reject path traversal; stored names never contain separators.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	return os.Remove(filepath.Join(s.dir, filename))
}

func (s *Store) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read uploads dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// URLFor returns the public URL of a stored file.
func (s *Store) URLFor(filename string) string {
	return s.urlBase + "/" + filename
}
