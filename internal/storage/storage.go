package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/elmoro10/fagerborg-tabeller/internal/logger"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// Storage handles persistence of the feed file
type Storage struct {
	path string
}

// New creates a Storage for the feed file at path, creating its directory.
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, crerr.Wrap(err, "getting home directory")
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, crerr.Wrap(err, "creating data directory")
	}

	return &Storage{path: path}, nil
}

// Path returns the feed file location.
func (s *Storage) Path() string {
	return s.path
}

// Read decodes the feed file at path. Missing competitions are filled with empty
// snapshots.
func Read(path string) (*standings.Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrap(err, "reading feed")
	}

	var feed standings.Feed
	if err := sonic.ConfigStd.Unmarshal(data, &feed); err != nil {
		return nil, crerr.Wrapf(err, "parsing feed %s", path)
	}

	for _, key := range standings.Keys {
		if feed.Get(key) == nil {
			feed.Set(key, standings.NewSnapshot(""))
		}
	}
	return &feed, nil
}

// Load reads the previously published feed. It never fails: a missing, unreadable or
// corrupt file yields a feed with two empty snapshots, logged as a warning unless the
// file simply does not exist yet.
func (s *Storage) Load() *standings.Feed {
	feed, err := Read(s.path)
	if err != nil {
		if !os.IsNotExist(crerr.Cause(err)) {
			logger.Warn("previous feed unusable, treating as empty", logger.Fields{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return standings.NewFeed()
	}
	return feed
}

// Save atomically replaces the feed file with feed.
func (s *Storage) Save(feed *standings.Feed) error {
	data, err := sonic.ConfigStd.MarshalIndent(feed, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encoding feed")
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return crerr.Wrap(err, "writing feed")
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
