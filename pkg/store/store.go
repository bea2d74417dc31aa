// Package store persists generated configurations as timestamped files so
// repeated runs never clobber earlier output.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sda-fusion/fusiongen/pkg/util"
)

// Store writes rendered configurations under a single output directory.
type Store struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

// New creates the output directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes one rendered configuration to <hostname>-YYYYMMDD-HHMMSS.cfg
// and returns the resulting path.
func (s *Store) Save(hostname, config string) (string, error) {
	if hostname == "" {
		return "", fmt.Errorf("hostname is required")
	}

	name := fmt.Sprintf("%s-%s.cfg", sanitizeHostname(hostname), s.now().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, []byte(config), 0644); err != nil {
		return "", fmt.Errorf("writing configuration: %w", err)
	}

	util.WithField("path", path).Debug("saved configuration")
	return path, nil
}

// Entry describes one stored configuration file.
type Entry struct {
	Name     string
	Hostname string
	ModTime  time.Time
	Size     int64
}

// List returns stored configurations, newest first.
func (s *Store) List() ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.cfg"))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name:     filepath.Base(path),
			Hostname: hostnameOf(filepath.Base(path)),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// Read returns the contents of one stored configuration by file name. The
// name must not escape the output directory.
func (s *Store) Read(name string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid configuration name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("configuration %q: %w", name, util.ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// sanitizeHostname keeps file names path-safe.
func sanitizeHostname(hostname string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, hostname)
}

// hostnameOf strips the timestamp suffix from a stored file name.
func hostnameOf(name string) string {
	base := strings.TrimSuffix(name, ".cfg")
	parts := strings.Split(base, "-")
	if len(parts) >= 3 {
		return strings.Join(parts[:len(parts)-2], "-")
	}
	return base
}
