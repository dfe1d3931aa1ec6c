package camera

import "github.com/rcliao/exifnaming/internal/model"

// TZ101 is the Panasonic DMC-TZ101.
type TZ101 struct{}

var tz101Groups = []Group{
	{"AF", []string{"AF Area Mode", "AF Assist Lamp", "Focus Mode", "Macro Mode", "Metering Mode"}},
	{"Mode", []string{"Advanced Scene Mode", "Advanced Scene Type", "Color Effect", "Contrast Mode", "HDR",
		"Photo Style", "Scene Capture Type", "Scene Mode", "Scene Type", "Self Timer",
		"Sensitivity Type", "Shooting Mode", "Shutter Type", "Sweep Panorama Direction",
		"Sweep Panorama Field Of View", "Timer Recording"}},
	{"Series", []string{"Bracket Settings", "Burst Mode", "Burst Speed", "Sequence Number",
		"Dependent Image 1 Entry Number", "Dependent Image 2 Entry Number", "Number Of Images"}},
	{"Exposure", []string{"Exposure Compensation", "Exposure Mode", "Exposure Program", "Exposure Time"}},
	{"Flash", []string{"Flash", "Flash Bias", "Flash Curtain", "Flash Fired"}},
	{"Zoom", []string{"Field Of View", "Focal Length In 35mm Format", "F Number", "Hyperfocal Distance"}},
	{"Qual", []string{"ISO", "Light Source", "Light Value", "Long Exposure Noise Reduction", "Program ISO",
		"Gain Control", "White Balance"}},
	{"Time", []string{"Date/Time Original", "Sub Sec Time Original"}},
	{"Rec", []string{"Audio", "Megapixels", "Video Frame Rate", "Image Quality"}},
	{"Rot", []string{"Orientation", "Rotation", "Camera Orientation", "Roll Angle", "Pitch Angle"}},
}

var tz101Creative = map[string]string{
	"Expressive":         "EXPS",
	"Retro":              "RETR",
	"Old Days":           "OLD",
	"High Key":           "HKEY",
	"Low Key":            "LKEY",
	"Sepia":              "SEPI",
	"Monochrome":         "MONO",
	"Dynamic Monochrome": "D.MONO",
	"Rough Monochrome":   "R.MONO",
	"Silky Monochrome":   "S.MONO",
	"Impressive Art":     "IART",
	"High Dynamic":       "HDYN",
	"Cross Process":      "XPRO",
	"Toy Effect":         "TOY",
	"Toy Pop":            "TOYP",
	"Bleach Bypass":      "BLEA",
	"Miniature":          "MINI",
	"Soft":               "SOFT",
	"Fantasy":            "FAN",
	"Star":               "STAR",
	"Color Select":       "CLR",
	"Sunshine":           "SUN",
}

var tz101Scene = map[string]string{
	"Clear Portrait":           "POR1",
	"Silky Skin":               "POR2",
	"Backlit Softness":         "POR3",
	"Clear in Backlight":       "POR4",
	"Relaxing Tone":            "POR5",
	"Sweet Child's Face":       "POR6",
	"Distinct Scenery":         "LAN1",
	"Bright Blue Sky":          "LAN2",
	"Romantic Sunset Glow":     "SUN1",
	"Vivid Sunset Glow":        "SUN2",
	"Glistening Water":         "GLIT1",
	"Clear Nightscape":         "NIGHT1",
	"Cool Night Sky":           "NIGHT2",
	"Warm Glowing Nightscape":  "NIGHT3",
	"Artistic Nightscape":      "NIGHT4",
	"Glittering Illuminations": "GLIT2",
	"Handheld Night Shot":      "NIGHT5",
	"Clear Night Portrait":     "NIGHT6",
	"Soft Image of a Flower":   "SOFT1",
	"Appetizing Food":          "SOFT2",
	"Cute Desert":              "SOFT3",
	"Freeze Animal Motion":     "FAST1",
	"Clear Sports Shot":        "FAST2",
	"Monochrome":               "SMONO",
	"Panorama":                 "PANO",
}

// exiftool prints these TZ101 maker-note values as "Unknown (...)".
var tz101Unknown = map[valueKey]string{
	{"AF Area Mode", "Unknown (0 49)"}:        "49-area",
	{"AF Area Mode", "Unknown (240 0)"}:       "Tracking",
	{"Contrast Mode", "Unknown (0x3)"}:        "3",
	{"Contrast Mode", "Unknown (0x5)"}:        "5",
	{"Contrast Mode", "Unknown (0x8)"}:        "8",
	{"Advanced Scene Mode", "Unknown (54 1)"}: "HS",
	{"Advanced Scene Mode", "Unknown (60 7)"}: "4K",
	{"Advanced Scene Mode", "Unknown (0 7)"}:  "4K",
	{"Scene Mode", "Unknown (60)"}:            "4K",
	{"Scene Mode", "Unknown (54)"}:            "HS",
}

// Scene Mode values that are not scene guide shots.
var tz101NotScene = map[string]bool{
	"Off":              true,
	"Creative Control": true,
	"Digital Filter":   true,
	"4K":               true,
	"HS":               true,
}

func (TZ101) Name() string        { return "DMC-TZ101" }
func (TZ101) Groups() []Group     { return tz101Groups }
func (TZ101) SceneTag() string    { return "Scene Mode" }
func (TZ101) CreativeTag() string { return "Advanced Scene Mode" }

func (TZ101) Normalize(tag, raw string) string { return normalize(tz101Unknown, tag, raw) }

func (TZ101) AbbreviateScene(raw string) string    { return abbreviate(tz101Scene, raw) }
func (TZ101) AbbreviateCreative(raw string) string { return abbreviate(tz101Creative, raw) }

func (TZ101) Classify(r model.Row) model.Classification {
	creative := r.Equals("Scene Mode", "Creative Control") || r.Equals("Scene Mode", "Digital Filter")
	sceneMode, hasScene := r.Get("Scene Mode")
	return model.Classification{
		Series:     r.Equals("Burst Mode", "On"),
		Bracket:    r.Has("Bracket Settings") && !r.Equals("Bracket Settings", "No Bracket"),
		HDR:        r.Has("HDR") && !r.Equals("HDR", "Off"),
		Photo4K:    r.Equals("Image Quality", "8.2"),
		Timelapse:  r.Equals("Timer Recording", "Time Lapse"),
		StopMotion: r.Equals("Timer Recording", "Stop-motion Animation"),
		Creative:   creative,
		Scene:      hasScene && !tz101NotScene[sceneMode],
		Sun:        r.Equals("Scene Mode", "Sun1") || r.Equals("Scene Mode", "Sun2"),
		Burst4K:    r.Equals("Image Quality", "4k Movie") && r.Equals("Video Frame Rate", "29.97"),
		Film4K:     r.Equals("Image Quality", "4k Movie"),
		HighSpeed:  r.Equals("Image Quality", "Full HD Movie") && r.Equals("Advanced Scene Mode", "HS"),
		FullHD:     r.Equals("Image Quality", "Full HD Movie") && r.Equals("Advanced Scene Mode", "Off"),
	}
}
