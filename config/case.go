// Package config reads terrain case files. Two formats are accepted: the
// dem2fds keyword format and TOML.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pavletto/demterrain/geodesy"
	"github.com/pavletto/demterrain/internal/errs"
	"github.com/pavletto/demterrain/terrain"
)

// Unset marks a vertical bound to derive from the data.
const Unset = -1000.0

// Case is one terrain build request.
type Case struct {
	// Name is the case file base name without extension.
	Name string

	Cols, Rows int
	KBar       int
	ZMin, ZMax float64

	Frame      geodesy.FrameParams
	BufferDist float64
	MeshX      int
	MeshY      int
	Exclusions []terrain.ExclusionRegion
}

func defaultCase(name string) Case {
	return Case{
		Name:  name,
		Cols:  100,
		Rows:  100,
		KBar:  10,
		ZMin:  Unset,
		ZMax:  Unset,
		MeshX: 1,
		MeshY: 1,
	}
}

// ZOverride returns the explicit vertical bounds, nil where the case
// leaves them to be derived.
func (c Case) ZOverride() (zmin, zmax *float64) {
	if c.ZMin > terrain.DeriveSentinel {
		v := c.ZMin
		zmin = &v
	}
	if c.ZMax > terrain.DeriveSentinel {
		v := c.ZMax
		zmax = &v
	}
	return zmin, zmax
}

// Validate checks what can be checked before sampling. Frame resolution
// does the rest.
func (c Case) Validate() error {
	if c.Frame.Mode == geodesy.ModeNone {
		return errs.Configf("case %s: no LONGLATORIG, LONGLATCENTER or LONGLATMINMAX given", c.Name)
	}
	if c.Cols < 2 || c.Rows < 2 {
		return errs.Configf("case %s: grid needs at least 2×2 points, got %d×%d", c.Name, c.Cols, c.Rows)
	}
	if c.KBar < 1 {
		return errs.Configf("case %s: kbar %d", c.Name, c.KBar)
	}
	if c.MeshX < 1 || c.MeshY < 1 {
		return errs.Configf("case %s: mesh split %dx%d", c.Name, c.MeshX, c.MeshY)
	}
	if c.BufferDist < 0 {
		return errs.Configf("case %s: negative buffer distance %g", c.Name, c.BufferDist)
	}
	for i, e := range c.Exclusions {
		if e.XMax < e.XMin || e.YMax < e.YMin {
			return errs.Configf("case %s: exclusion %d %v is inverted", c.Name, i, e)
		}
	}
	return nil
}

// Resolve validates the case and resolves its reference frame.
func (c Case) Resolve() (geodesy.ReferenceFrame, error) {
	if err := c.Validate(); err != nil {
		return geodesy.ReferenceFrame{}, err
	}
	return geodesy.ResolveFrame(c.Frame)
}

// Load reads the case at path; ".toml" files are TOML, anything else the
// keyword format.
func Load(path string) (Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return Case{}, err
	}
	defer f.Close()

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	var c Case
	if strings.EqualFold(ext, ".toml") {
		c, err = ParseTOML(name, f)
	} else {
		c, err = ParseKeywords(name, f)
	}
	if err != nil {
		return Case{}, err
	}
	return c, c.Validate()
}
