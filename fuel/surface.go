package fuel

// codes are the fuel-model codes with a dedicated surface, in surface
// order: Anderson models 1-13 followed by the non-burnable classes.
var codes = [...]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 90, 91, 92, 93, 98, 99}

// Unclassified is the surface index of any code without its own surface.
const Unclassified = len(codes) + 1

// Codes returns the fuel-model codes with a dedicated surface, in
// surface order.
func Codes() []int {
	out := make([]int, len(codes))
	copy(out, codes[:])
	return out
}

// SurfaceIndex maps a fuel-model code to its 1-based surface index.
func SurfaceIndex(code int) int {
	for i, c := range codes {
		if c == code {
			return i + 1
		}
	}
	return Unclassified
}

// Surface is one entry of the fuel palette. Code is 0 for the
// unclassified surface.
type Surface struct {
	Index int
	Code  int
	ID    string
	RGB   [3]uint8
}

var palette = []Surface{
	{Code: 1, ID: "short_grass", RGB: [3]uint8{255, 255, 190}},
	{Code: 2, ID: "timber_grass", RGB: [3]uint8{255, 255, 0}},
	{Code: 3, ID: "tall_grass", RGB: [3]uint8{230, 230, 0}},
	{Code: 4, ID: "chaparral", RGB: [3]uint8{255, 211, 127}},
	{Code: 5, ID: "brush", RGB: [3]uint8{255, 170, 0}},
	{Code: 6, ID: "dormant_brush", RGB: [3]uint8{205, 170, 102}},
	{Code: 7, ID: "southern_rough", RGB: [3]uint8{137, 112, 68}},
	{Code: 8, ID: "closed_timber_litter", RGB: [3]uint8{211, 255, 190}},
	{Code: 9, ID: "hardwood_litter", RGB: [3]uint8{112, 168, 0}},
	{Code: 10, ID: "timber_understory", RGB: [3]uint8{38, 115, 0}},
	{Code: 11, ID: "light_slash", RGB: [3]uint8{232, 190, 255}},
	{Code: 12, ID: "medium_slash", RGB: [3]uint8{194, 158, 215}},
	{Code: 13, ID: "heavy_slash", RGB: [3]uint8{132, 0, 168}},
	{Code: 90, ID: "nb_unknown", RGB: [3]uint8{156, 156, 156}},
	{Code: 91, ID: "nb_urban", RGB: [3]uint8{104, 104, 104}},
	{Code: 92, ID: "nb_snow_ice", RGB: [3]uint8{225, 225, 225}},
	{Code: 93, ID: "nb_agriculture", RGB: [3]uint8{255, 235, 190}},
	{Code: 98, ID: "nb_water", RGB: [3]uint8{0, 92, 230}},
	{Code: 99, ID: "nb_barren", RGB: [3]uint8{225, 225, 225}},
	{Code: 0, ID: "unclassified", RGB: [3]uint8{0, 0, 0}},
}

func init() {
	for i := range palette {
		palette[i].Index = i + 1
	}
}

// Palette returns the surfaces in index order; entry i has Index i+1.
func Palette() []Surface {
	out := make([]Surface, len(palette))
	copy(out, palette)
	return out
}

// SurfaceFor returns the palette entry of a 1-based surface index.
// Out-of-range indices resolve to the unclassified surface.
func SurfaceFor(index int) Surface {
	if index < 1 || index > len(palette) {
		return palette[len(palette)-1]
	}
	return palette[index-1]
}
