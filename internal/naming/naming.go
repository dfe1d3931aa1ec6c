// Package naming derives new file names from classified tag rows.
//
// A name has the form
//
//	<prefix><YYMMDD>_<counter><group>[_<mode>...]<ext>
//
// where group is one of B<seq>, S<seq>, TL<seq> or SM<seq> for shots
// taken as part of a bracket, burst, timelapse or stop-motion run, and the
// mode tokens mark HDR, 4K and video modes plus, for standalone shots, the
// camera's scene or creative abbreviation.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/model"
)

// ErrInvalidName is returned when a name cannot be made filesystem-safe.
var ErrInvalidName = errors.New("invalid file name")

// NoDate replaces the date token for rows without a usable date.
const NoDate = "nodate"

const exifTimeLayout = "2006:01:02 15:04:05"

// Params carries the batch-level inputs of Synthesize.
type Params struct {
	Prefix  string
	Counter int
}

// Result is a synthesized name plus the raw values that had no abbreviation.
type Result struct {
	Name         string
	Unrecognized []string
}

// Flagged reports whether some stylistic token was skipped.
func (r Result) Flagged() bool { return len(r.Unrecognized) > 0 }

// Synthesize builds the new name for row. When the row's current name
// already is the synthesized stem plus further tokens it is returned
// unchanged, so running Synthesize over its own output is a no-op.
func Synthesize(row model.Row, c model.Classification, cam camera.Model, p Params) (Result, error) {
	current := row.Value(string(model.KeyFileName))
	ext := filepath.Ext(current)

	var b strings.Builder
	b.WriteString(p.Prefix)
	b.WriteString(DateToken(row))
	fmt.Fprintf(&b, "_%03d", p.Counter)
	b.WriteString(GroupToken(row, c))

	var res Result
	for _, tok := range ModeTokens(c) {
		b.WriteString("_" + tok)
	}
	if !c.Grouped() {
		tokens, unrecognized := styleTokens(row, c, cam)
		for _, tok := range tokens {
			b.WriteString("_" + tok)
		}
		res.Unrecognized = unrecognized
	}

	stem, err := Sanitize(b.String())
	if err != nil {
		return Result{}, err
	}
	if current != "" && extendsStem(strings.TrimSuffix(current, ext), stem) {
		res.Name = current
		return res, nil
	}
	res.Name = stem + ext
	return res, nil
}

// extendsStem reports whether name is stem, or stem followed by a token
// boundary: "_" or the letter of a group token.
func extendsStem(name, stem string) bool {
	rest, ok := strings.CutPrefix(name, stem)
	if !ok {
		return false
	}
	return rest == "" || strings.ContainsRune("_BST", rune(rest[0]))
}

// DateToken returns the capture date as YYMMDD, falling back to the file
// modification date and then to NoDate.
func DateToken(row model.Row) string {
	for _, key := range []model.TagKey{model.KeyDateTimeOriginal, model.KeyModifyDate} {
		v := row.Value(string(key))
		if len(v) < len(exifTimeLayout) {
			continue
		}
		if t, err := time.Parse(exifTimeLayout, v[:len(exifTimeLayout)]); err == nil {
			return t.Format("060102")
		}
	}
	return NoDate
}

// SequenceNumber returns the row's position within its shot group, 0 when unknown.
func SequenceNumber(row model.Row) int {
	n, err := strconv.Atoi(strings.TrimSpace(row.Value(string(model.KeySequenceNumber))))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// GroupToken returns the grouping token. Bracket wins over series, series
// over timelapse, timelapse over stop motion.
func GroupToken(row model.Row, c model.Classification) string {
	var tok string
	switch {
	case c.Bracket:
		tok = "B"
	case c.Series:
		tok = "S"
	case c.Timelapse:
		tok = "TL"
	case c.StopMotion:
		tok = "SM"
	default:
		return ""
	}
	if n := SequenceNumber(row); n > 0 {
		tok += strconv.Itoa(n)
	}
	return tok
}

// ModeTokens lists the capture-mode tokens in a fixed order.
func ModeTokens(c model.Classification) []string {
	var out []string
	if c.HDR {
		out = append(out, "HDR")
	}
	if c.Photo4K {
		out = append(out, "4K")
	}
	switch {
	case c.Burst4K:
		out = append(out, "4KB")
	case c.Film4K:
		out = append(out, "4KF")
	case c.HighSpeed:
		out = append(out, "HS")
	case c.FullHD:
		out = append(out, "FHD")
	}
	return out
}

func styleTokens(row model.Row, c model.Classification, cam camera.Model) (tokens, unrecognized []string) {
	add := func(tag string, abbreviate func(string) string) {
		raw := row.Value(tag)
		abbr := abbreviate(raw)
		if abbr == camera.Unrecognized {
			unrecognized = append(unrecognized, tag+"="+raw)
			return
		}
		tokens = append(tokens, abbr)
	}
	if c.Creative {
		add(cam.CreativeTag(), cam.AbbreviateCreative)
	}
	if c.Scene {
		add(cam.SceneTag(), cam.AbbreviateScene)
	}
	if c.Sun && !hasSunToken(tokens) {
		tokens = append(tokens, "SUN")
	}
	return tokens, unrecognized
}

func hasSunToken(tokens []string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, "SUN") {
			return true
		}
	}
	return false
}

// Sanitize substitutes characters that are unsafe in file names with "_"
// and trims trailing dots and spaces.
func Sanitize(name string) (string, error) {
	out := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)
	out = strings.TrimRight(out, ". ")
	if out == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return out, nil
}
