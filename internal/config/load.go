package config

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	crerr "github.com/cockroachdb/errors"
	"github.com/titanous/json5"
)

// Load returns Default merged with the JSON5 file at path and its "<name>.local.<ext>"
// sibling, the local file taking priority. An empty path yields Default. When neither
// file exists the returned error satisfies os.IsNotExist via errors.Is.
//
// The result is not validated; callers apply flag overrides first and then Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	found := false
	for _, name := range []string{path, localPath(path)} {
		override, ok, err := readFile(name)
		if err != nil {
			return cfg, err
		}
		if !ok {
			continue
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return cfg, crerr.Wrapf(err, "merging config %s", name)
		}
		found = true
	}

	if !found {
		return cfg, crerr.Wrapf(os.ErrNotExist, "config %s", path)
	}
	return cfg, nil
}

func readFile(name string) (Config, bool, error) {
	var out Config

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return out, false, nil
		}
		return out, false, crerr.Wrapf(err, "reading config %s", name)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, false, nil
	}

	if err := json5.Unmarshal(data, &out); err != nil {
		return out, false, crerr.Wrapf(err, "parsing config %s", name)
	}
	return out, true, nil
}

// localPath turns "dir/tabeller.json5" into "dir/tabeller.local.json5".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}
