package elevation

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pavletto/demterrain/geodesy"
)

// Header describes one ESRI float grid tile: the lower-left corner,
// the grid size and the square cell size, all in degrees.
type Header struct {
	Name      string
	NCols     int
	NRows     int
	XLLCorner float64
	YLLCorner float64
	CellSize  float64
	NoData    *float32
	ByteOrder binary.ByteOrder
}

// Bounds derives the tile extent from the origin corner, cell size and
// dimensions.
func (h Header) Bounds() geodesy.LonLatBox {
	return geodesy.LonLatBox{
		LongMin: h.XLLCorner,
		LongMax: h.XLLCorner + float64(h.NCols)*h.CellSize,
		LatMin:  h.YLLCorner,
		LatMax:  h.YLLCorner + float64(h.NRows)*h.CellSize,
	}
}

func (h Header) validate() error {
	if h.NCols <= 0 || h.NRows <= 0 {
		return fmt.Errorf("hdr %s: grid size %dx%d", h.Name, h.NCols, h.NRows)
	}
	if !(h.CellSize > 0) {
		return fmt.Errorf("hdr %s: cellsize %g", h.Name, h.CellSize)
	}
	return nil
}

// ParseHeader reads "key value" lines of an ESRI .hdr file. Keys are
// case-insensitive; unknown keys are ignored.
func ParseHeader(name string, r io.Reader) (Header, error) {
	h := Header{Name: name, ByteOrder: binary.LittleEndian}
	seen := map[string]bool{}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.ToLower(fields[0])
		val := fields[1]

		var err error
		switch key {
		case "ncols":
			h.NCols, err = strconv.Atoi(val)
		case "nrows":
			h.NRows, err = strconv.Atoi(val)
		case "xllcorner":
			h.XLLCorner, err = strconv.ParseFloat(val, 64)
		case "yllcorner":
			h.YLLCorner, err = strconv.ParseFloat(val, 64)
		case "cellsize":
			h.CellSize, err = strconv.ParseFloat(val, 64)
		case "nodata_value", "nodata":
			var f float64
			f, err = strconv.ParseFloat(val, 32)
			nd := float32(f)
			h.NoData = &nd
		case "byteorder":
			switch strings.ToUpper(val) {
			case "MSBFIRST":
				h.ByteOrder = binary.BigEndian
			case "LSBFIRST", "I", "VMS_FLOAT":
				h.ByteOrder = binary.LittleEndian
			default:
				err = fmt.Errorf("unknown byte order %q", val)
			}
		default:
			continue
		}
		if err != nil {
			return Header{}, fmt.Errorf("hdr %s: %s: %w", name, key, err)
		}
		seen[key] = true
	}
	if err := sc.Err(); err != nil {
		return Header{}, fmt.Errorf("hdr %s: %w", name, err)
	}

	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if !seen[k] {
			return Header{}, fmt.Errorf("hdr %s: missing %s", name, k)
		}
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// ReadHeader parses the header file at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return ParseHeader(path, f)
}
