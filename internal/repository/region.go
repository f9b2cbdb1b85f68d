package repository

// Region filter values accepted by Filter.Region.
const (
	RegionEastern = "eastern"
	RegionWestern = "western"
)

// Eastern Washington counties, per the platform's regional reporting
// convention. Everything else is treated as western.
var easternCounties = map[string]bool{
	"SPOKANE":      true,
	"YAKIMA":       true,
	"BENTON":       true,
	"FRANKLIN":     true,
	"WALLA WALLA":  true,
	"GRANT":        true,
	"CHELAN":       true,
	"DOUGLAS":      true,
	"OKANOGAN":     true,
	"ADAMS":        true,
	"WHITMAN":      true,
	"KITTITAS":     true,
	"KLICKITAT":    true,
	"COLUMBIA":     true,
	"GARFIELD":     true,
	"ASOTIN":       true,
	"FERRY":        true,
	"STEVENS":      true,
	"PEND OREILLE": true,
	"LINCOLN":      true,
}

// IsEastern reports whether the named county lies in Eastern Washington.
func IsEastern(county string) bool {
	return easternCounties[county]
}

// EasternCounties returns the eastern region membership list.
func EasternCounties() []string {
	names := make([]string, 0, len(easternCounties))
	for name := range easternCounties {
		names = append(names, name)
	}
	return names
}
