package palette

import "github.com/lucasb-eyer/go-colorful"

// Params tunes highlight and rim blending.
type Params struct {
	HighlightStrength float64 `yaml:"highlight_strength"` // Blend toward white at full illumination
	RimStrength       float64 `yaml:"rim_strength"`       // Blend toward the accent on rim vertices
	RimMinHeight      float64 `yaml:"rim_min_height"`     // Normalized height a rim vertex must reach
	RimEdgeBand       float64 `yaml:"rim_edge_band"`      // Normalized depth from the back edge counted as silhouette
}

// DefaultParams returns the standard blending.
func DefaultParams() Params {
	return Params{
		HighlightStrength: 0.55,
		RimStrength:       0.35,
		RimMinHeight:      0.62,
		RimEdgeBand:       0.45,
	}
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// bands is the number of gradient segments between the five stops.
const bands = 4

// Gradient returns the palette color at normalized height h01.
func Gradient(h01 float64, p Palette) colorful.Color {
	stops := [bands + 1]colorful.Color{p.Sky, p.Low, p.Mid, p.High, p.Peak}
	t := clamp01(h01) * bands
	band := int(t)
	if band >= bands {
		band = bands - 1
	}
	return stops[band].BlendRgb(stops[band+1], t-float64(band))
}

// Color shades a vertex: the height gradient, lifted toward white by
// illumination and tinted toward the accent on the rim.
func Color(h01 float64, p Palette, illumination float64, isRim bool, params Params) colorful.Color {
	c := Gradient(h01, p)
	if w := clamp01(illumination * params.HighlightStrength); w > 0 {
		c = c.BlendRgb(white, w)
	}
	if isRim {
		c = c.BlendRgb(p.Accent, clamp01(params.RimStrength))
	}
	return c.Clamped()
}

// IsRim reports whether a vertex is high and close to the back silhouette edge.
// z01 is 0 at the back of the grid and 1 at the front.
func IsRim(h01, z01 float64, params Params) bool {
	return h01 >= params.RimMinHeight && z01 <= params.RimEdgeBand
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
