// Package palette derives deterministic display colors for clients. Each
// department maps to a fixed hue; caregivers within a department select one of
// five lightness levels, so clients sharing a department share a color family
// while different caregivers remain visually distinct. Purely decorative: the
// mapping carries no access-control meaning.
package palette

import "fmt"

// Colors is the CSS color set for one client row.
type Colors struct {
	Background      string `json:"background"`
	Border          string `json:"border"`
	Text            string `json:"text"`
	BackgroundHover string `json:"background_hover"`
}

// Base hue/saturation per department. Unknown departments fall back to a
// neutral gray (saturation 0).
var departmentHues = map[int64]struct{ h, s float64 }{
	1: {h: 150, s: 100}, // green
	2: {h: 200, s: 100}, // blue
	3: {h: 270, s: 100}, // purple
}

const borderOffset = 30

// ForClient returns the color set for a client in the given department with
// the given assigned caregiver (nil when unassigned). Identical inputs always
// yield identical output.
func ForClient(departmentID int64, caregiverID *int64) Colors {
	base, ok := departmentHues[departmentID]
	if !ok {
		base = struct{ h, s float64 }{h: 0, s: 0}
	}

	// Fold the caregiver id into five lightness slots (38..70); unassigned
	// clients get a fixed mid lightness.
	lightness := 50.0
	if caregiverID != nil {
		slot := (*caregiverID % 5) + 1
		lightness = 30 + float64(slot)*8
	}

	r, g, b := hslToRGB(base.h/360, base.s/100, lightness/100)

	return Colors{
		Background:      fmt.Sprintf("rgba(%d, %d, %d, 0.15)", r, g, b),
		Border:          fmt.Sprintf("rgb(%d, %d, %d)", clamp(r+borderOffset), clamp(g+borderOffset), clamp(b+borderOffset)),
		Text:            fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		BackgroundHover: fmt.Sprintf("rgba(%d, %d, %d, 0.25)", r, g, b),
	}
}

// hslToRGB converts h, s, l in [0,1] to 8-bit RGB channels using the standard
// HSL transform.
func hslToRGB(h, s, l float64) (int, int, int) {
	if s == 0 {
		v := int(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToRGB(p, q, h+1.0/3.0)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3.0)

	return int(r * 255), int(g * 255), int(b * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func clamp(v int) int {
	if v > 255 {
		return 255
	}
	return v
}
