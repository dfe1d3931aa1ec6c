package camera

import "github.com/rcliao/exifnaming/internal/model"

// Generic classifies from standard EXIF tags only. Maker-note features
// (bursts, timelapse, creative filters) are never detected.
type Generic struct{}

var genericGroups = []Group{
	{"Time", []string{"Date/Time Original", "Sub Sec Time Original"}},
	{"Exposure", []string{"Exposure Compensation", "Exposure Mode", "Exposure Program", "Exposure Time"}},
	{"Zoom", []string{"Focal Length", "Focal Length In 35mm Format", "F Number"}},
	{"Mode", []string{"Scene Capture Type", "HDR"}},
}

var genericScene = map[string]string{
	"Landscape": "LAN",
	"Portrait":  "POR",
	"Night":     "NIGHT",
}

func (Generic) Name() string        { return "GENERIC" }
func (Generic) Groups() []Group     { return genericGroups }
func (Generic) SceneTag() string    { return "Scene Capture Type" }
func (Generic) CreativeTag() string { return "" }

func (Generic) Normalize(_, raw string) string { return raw }

func (Generic) AbbreviateScene(raw string) string { return abbreviate(genericScene, raw) }
func (Generic) AbbreviateCreative(string) string  { return Unrecognized }

func (Generic) Classify(r model.Row) model.Classification {
	return model.Classification{
		Bracket: r.Equals("Exposure Mode", "Auto bracket"),
		HDR:     r.Has("HDR") && !r.Equals("HDR", "Off"),
		Scene:   r.Has("Scene Capture Type") && !r.Equals("Scene Capture Type", "Standard"),
	}
}
