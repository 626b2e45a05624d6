package elevation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Skipped is a header file Discover could not use.
type Skipped struct {
	Path string
	Err  error
}

// Discover registers every "*.hdr" in dir, in lexical file order, with
// its payload at the same base name plus ".flt". Only headers are read;
// payloads load on first sample. Headers that fail to parse are logged
// and returned in skipped.
func Discover(dir string, log logrus.FieldLogger) (ix *Index, skipped []Skipped, err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("elevation dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".hdr") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	ix = NewIndex()
	ix.Log = log
	for _, name := range names {
		path := filepath.Join(dir, name)
		h, err := ReadHeader(path)
		if err != nil {
			log.WithField("file", path).WithError(err).Warn("skipping elevation header")
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		h.Name = strings.TrimSuffix(name, filepath.Ext(name))
		payload := filepath.Join(dir, h.Name+".flt")
		t, err := NewTile(h, FileSource(payload))
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		ix.Add(t)
		b := t.LonLatBounds()
		log.WithFields(logrus.Fields{
			"tile": h.Name, "cols": h.NCols, "rows": h.NRows,
			"long_min": b.LongMin, "long_max": b.LongMax,
			"lat_min": b.LatMin, "lat_max": b.LatMax,
		}).Debug("elevation tile registered")
	}
	if ix.Len() == 0 {
		return ix, skipped, fmt.Errorf("no elevation tiles in %s", dir)
	}
	return ix, skipped, nil
}
