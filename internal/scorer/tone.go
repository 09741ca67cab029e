package scorer

import "github.com/edulingua/backend/internal/textproc"

// Register markers. The tone component does not judge which register the
// writer chose, only whether they kept to one.
var formalMarkers = map[string]bool{
	"furthermore": true, "moreover": true, "consequently": true,
	"therefore": true, "nevertheless": true, "regarding": true,
	"accordingly": true, "hereby": true, "thus": true, "whom": true,
}

var informalMarkers = map[string]bool{
	"gonna": true, "wanna": true, "gotta": true, "kinda": true,
	"yeah": true, "ok": true, "okay": true, "cool": true,
	"stuff": true, "guys": true, "awesome": true, "btw": true,
}

// toneConsistency scores register consistency in [0,100]. Text with no
// marked words at all is treated as consistent.
func toneConsistency(text string) float64 {
	var formal, informal int
	for _, w := range textproc.Words(text) {
		if formalMarkers[w] {
			formal++
		}
		if informalMarkers[w] {
			informal++
		}
	}

	switch {
	case formal > 0 && informal > 0:
		return 60 // register mixing
	case informal >= 3:
		return 80 // heavily informal, consistent but marked
	default:
		return 100
	}
}
