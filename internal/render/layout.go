package render

import (
	"math"
	"sort"
)

// Grid resolution: one tile per 5 degrees of longitude and latitude.
const (
	gridCols   = 72
	gridRows   = 36
	gridDegree = 5.0
)

// centroids holds an approximate (latitude, longitude) for every code on the
// built-in world map.
var centroids = map[string][2]float64{
	"ad": {42.5, 1.5}, "ae": {24, 54}, "af": {33, 65}, "al": {41, 20},
	"am": {40, 45}, "ao": {-12, 18}, "aq": {-80, 0}, "ar": {-34, -64},
	"at": {47, 13}, "au": {-25, 134}, "az": {40, 47}, "ba": {44, 18},
	"bd": {24, 90}, "be": {50.8, 4.5}, "bf": {12, -1.5}, "bg": {43, 25},
	"bh": {26, 50.5}, "bi": {-3.5, 30}, "bj": {9.5, 2.3}, "bn": {4.5, 114.7},
	"bo": {-17, -65}, "br": {-10, -52}, "bt": {27.5, 90.5}, "bw": {-22, 24},
	"by": {53, 28}, "bz": {17, -88.7}, "ca": {60, -96}, "cd": {-3, 23},
	"cf": {7, 21}, "cg": {-1, 15}, "ch": {47, 8}, "ci": {7.5, -5.5},
	"cl": {-31, -71}, "cm": {6, 12}, "cn": {35, 103}, "co": {4, -73},
	"cr": {10, -84}, "cu": {21.5, -79}, "cv": {16, -24}, "cy": {35, 33},
	"cz": {49.8, 15.5}, "de": {51, 10}, "dj": {11.5, 43}, "dk": {56, 10},
	"do": {19, -70.5}, "dz": {28, 3}, "ec": {-1.5, -78}, "ee": {59, 26},
	"eg": {27, 30}, "eh": {24.5, -13}, "er": {15, 39}, "es": {40, -4},
	"et": {9, 39}, "fi": {64, 26}, "fr": {46, 2}, "ga": {-1, 11.5},
	"gb": {54, -2}, "ge": {42, 43.5}, "gf": {4, -53}, "gh": {8, -1},
	"gl": {72, -40}, "gm": {13.5, -15.5}, "gn": {10, -11}, "gq": {1.5, 10},
	"gr": {39, 22}, "gt": {15.5, -90.3}, "gu": {13.4, 144.8}, "gw": {12, -15},
	"gy": {5, -59}, "hk": {22.3, 114.2}, "hn": {15, -86.5}, "hr": {45, 16},
	"ht": {19, -72.5}, "hu": {47, 19.5}, "id": {-2, 118}, "ie": {53, -8},
	"il": {31, 35}, "in": {21, 78}, "iq": {33, 44}, "ir": {32, 53},
	"is": {65, -18}, "it": {42.8, 12.5}, "jm": {18, -77.3}, "jo": {31, 36.5},
	"jp": {36, 138}, "ke": {0.5, 38}, "kg": {41.5, 75}, "kh": {12.5, 105},
	"kp": {40, 127}, "kr": {36.5, 128}, "kw": {29.3, 47.6}, "kz": {48, 68},
	"la": {18, 105}, "lb": {33.8, 35.8}, "li": {47.1, 9.5}, "lk": {7.5, 80.7},
	"lr": {6.5, -9.5}, "ls": {-29.5, 28.5}, "lt": {55.3, 24}, "lu": {49.8, 6.1},
	"lv": {57, 25}, "ly": {27, 17}, "ma": {32, -6}, "mc": {43.7, 7.4},
	"md": {47, 29}, "me": {42.7, 19.3}, "mg": {-19, 47}, "mk": {41.6, 21.7},
	"ml": {17, -4}, "mm": {21, 96}, "mn": {46.8, 103}, "mo": {22.2, 113.5},
	"mr": {20, -10.5}, "mt": {35.9, 14.4}, "mu": {-20.3, 57.5}, "mv": {3.2, 73.2},
	"mw": {-13.5, 34}, "mx": {23, -102}, "my": {4, 102}, "mz": {-18, 35},
	"na": {-22, 17}, "ne": {17, 8}, "ng": {9, 8}, "ni": {13, -85},
	"nl": {52.3, 5.5}, "no": {62, 10}, "np": {28, 84}, "nz": {-41, 174},
	"om": {21, 57}, "pa": {9, -80}, "pe": {-10, -76}, "pg": {-6, 147},
	"ph": {12, 122}, "pk": {30, 70}, "pl": {52, 19.5}, "pr": {18.2, -66.5},
	"ps": {31.9, 35.2}, "pt": {39.5, -8}, "py": {-23, -58}, "re": {-21.1, 55.5},
	"ro": {46, 25}, "rs": {44, 21}, "ru": {60, 90}, "rw": {-2, 30},
	"sa": {24, 45}, "sc": {-4.6, 55.5}, "sd": {15, 30}, "se": {62, 15},
	"sg": {1.3, 103.8}, "sh": {-15.9, -5.7}, "si": {46, 15}, "sk": {48.7, 19.5},
	"sl": {8.5, -11.8}, "sm": {43.9, 12.4}, "sn": {14.5, -14.5}, "so": {6, 46},
	"sr": {4, -56}, "st": {0.2, 6.6}, "sv": {13.8, -88.9}, "sy": {35, 38},
	"sz": {-26.5, 31.5}, "td": {15, 19}, "tg": {8, 1.2}, "th": {15, 101},
	"tj": {39, 71}, "tl": {-8.8, 125.7}, "tm": {39, 59.5}, "tn": {34, 9.5},
	"tr": {39, 35}, "tw": {23.7, 121}, "tz": {-6, 35}, "ua": {49, 32},
	"ug": {1.3, 32.3}, "us": {39, -98}, "uy": {-33, -56}, "uz": {41.5, 64},
	"va": {41.9, 12.45}, "ve": {7, -66}, "vn": {16, 106}, "ye": {15.5, 48},
	"yt": {-12.8, 45.1}, "za": {-29, 24}, "zm": {-14, 28}, "zw": {-19, 30},
}

// Cell is a tile position in grid units.
type Cell struct {
	Col, Row int
}

// Layout assigns every code a distinct cell. Codes with a known centroid are
// placed on the world grid as close to their centroid as a free cell allows;
// other codes are appended in overflow rows below the grid.
type Layout struct {
	Cells map[string]Cell
	Cols  int
	Rows  int
}

// NewLayout lays out codes. The result depends only on the set of codes.
func NewLayout(codes []string) Layout {
	sorted := append([]string(nil), codes...)
	sort.Strings(sorted)

	l := Layout{
		Cells: make(map[string]Cell, len(sorted)),
		Cols:  gridCols,
		Rows:  gridRows,
	}
	taken := make(map[Cell]bool, len(sorted))

	var overflow []string
	for _, code := range sorted {
		if _, done := l.Cells[code]; done {
			continue
		}
		c, ok := centroids[code]
		if !ok {
			overflow = append(overflow, code)
			continue
		}
		cell, ok := nearestFree(project(c[0], c[1]), taken)
		if !ok {
			overflow = append(overflow, code)
			continue
		}
		taken[cell] = true
		l.Cells[code] = cell
	}

	if len(overflow) > 0 {
		// one blank row separates the overflow from the map
		for i, code := range overflow {
			l.Cells[code] = Cell{Col: i % gridCols, Row: gridRows + 1 + i/gridCols}
		}
		l.Rows = gridRows + 1 + (len(overflow)+gridCols-1)/gridCols
	}
	return l
}

func project(lat, lon float64) Cell {
	col := int(math.Floor((lon + 180) / gridDegree))
	row := int(math.Floor((90 - lat) / gridDegree))
	return Cell{Col: clamp(col, 0, gridCols-1), Row: clamp(row, 0, gridRows-1)}
}

// nearestFree searches rings of growing radius around want and returns the
// free cell closest to it; ties go to the smaller row, then column.
func nearestFree(want Cell, taken map[Cell]bool) (Cell, bool) {
	maxRadius := gridCols
	for r := 0; r <= maxRadius; r++ {
		best, bestDist, found := Cell{}, 0, false
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				c := Cell{Col: want.Col + dx, Row: want.Row + dy}
				if c.Col < 0 || c.Col >= gridCols || c.Row < 0 || c.Row >= gridRows || taken[c] {
					continue
				}
				d := dx*dx + dy*dy
				if !found || d < bestDist {
					best, bestDist, found = c, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return Cell{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
