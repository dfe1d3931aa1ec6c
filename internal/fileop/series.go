package fileop

import (
	"path/filepath"
	"regexp"
)

// Series tokens as they appear after the counter in a synthesized name.
const (
	SeriesBurst      = "S"
	SeriesStopMotion = "SM"
	SeriesTimelapse  = "TL"
	SeriesBracket    = "B"
)

var (
	bracketShot   = regexp.MustCompile(`_[0-9]+B([0-9]+)`)
	primaryShot   = regexp.MustCompile(`_[0-9]+B1(?:[^0-9]|$)`)
	seriesPattern = map[string]*regexp.Regexp{}
)

func init() {
	for _, tok := range []string{SeriesBurst, SeriesStopMotion, SeriesTimelapse, SeriesBracket} {
		seriesPattern[tok] = regexp.MustCompile(`_[0-9]+` + tok + `[0-9]*(?:[_.]|$)`)
	}
}

// BracketFolder returns "B<n>" for the n-th shot of a bracket series.
func BracketFolder(name string) (string, bool) {
	m := bracketShot.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return "B" + m[1], true
}

// IsSeries reports whether name carries the series token tok.
func IsSeries(name, tok string) bool {
	re, ok := seriesPattern[tok]
	return ok && re.MatchString(name)
}

// IsPrimaryBracket reports whether name is the first shot of a bracket series.
func IsPrimaryBracket(name string) bool {
	return primaryShot.MatchString(name)
}

// MoveBracketSeries moves the bracket shots among names into B<n>
// subfolders of dir. It returns the names left in place and the errors
// of failed moves.
func MoveBracketSeries(dir string, names []string) ([]string, []error) {
	return MoveMatching(dir, names, BracketFolder)
}

// MoveSeries moves the names carrying series token tok into dir/tok.
func MoveSeries(dir string, names []string, tok string) ([]string, []error) {
	return MoveMatching(dir, names, func(name string) (string, bool) {
		return tok, IsSeries(name, tok)
	})
}

// MoveMatching moves each name for which folder reports true into the
// returned subfolder of dir.
func MoveMatching(dir string, names []string, folder func(name string) (string, bool)) ([]string, []error) {
	var rest []string
	var errs []error
	for _, name := range names {
		sub, ok := folder(name)
		if !ok {
			rest = append(rest, name)
			continue
		}
		if err := Move(filepath.Join(dir, name), filepath.Join(dir, sub)); err != nil {
			errs = append(errs, err)
			rest = append(rest, name)
		}
	}
	return rest, errs
}
