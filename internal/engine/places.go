package engine

// Places is the fixed list of night destinations, addressed by 1-based
// ordinal in player commands.
var Places = []string{
	"docks",
	"park",
	"casino",
	"chapel",
	"warehouse",
}

func placeByOrdinal(ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(Places) {
		return "", false
	}
	return Places[ordinal-1], true
}
