// Package camera holds the per-camera tag knowledge: value corrections,
// scene/creative abbreviations and the classification predicates.
package camera

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rcliao/exifnaming/internal/model"
)

// Unrecognized is returned by the abbreviation lookups for raw values the
// model has no entry for.
const Unrecognized = "<unrecognized>"

// Auto selects the model from the batch's "Camera Model Name" column.
const Auto = "auto"

var (
	// ErrUnsupportedModel is returned for model identifiers without an implementation.
	ErrUnsupportedModel = errors.New("unsupported camera model")
	// ErrUnrecognizedValue marks a raw value missing from an abbreviation table.
	ErrUnrecognizedValue = errors.New("unrecognized tag value")
)

// Group is a labelled set of tags shown together.
type Group struct {
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
}

// Model is the capability set of one supported camera model.
type Model interface {
	// Name is the canonical identifier, e.g. "DMC-TZ101".
	Name() string
	Groups() []Group

	// Normalize corrects known-ambiguous raw values and returns all others unchanged.
	Normalize(tag, raw string) string
	Classify(row model.Row) model.Classification

	// AbbreviateScene and AbbreviateCreative return Unrecognized for unknown values.
	AbbreviateScene(raw string) string
	AbbreviateCreative(raw string) string

	// SceneTag and CreativeTag name the tags the abbreviations are looked up from.
	SceneTag() string
	CreativeTag() string
}

type valueKey struct {
	tag string
	raw string
}

var registry = map[string]func() Model{
	"DMC-TZ101": func() Model { return TZ101{} },
	"TZ101":     func() Model { return TZ101{} },
	"GENERIC":   func() Model { return Generic{} },
}

// Lookup returns the model for id. Matching ignores case and surrounding space.
func Lookup(id string) (Model, error) {
	ctor, ok := registry[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, id)
	}
	return ctor(), nil
}

// Detect picks the model named by the first non-empty "Camera Model Name" value.
func Detect(t *model.Table) (Model, error) {
	for _, v := range t.Column(string(model.KeyCameraModel)) {
		if v != "" {
			return Lookup(v)
		}
	}
	return nil, fmt.Errorf("%w: no %q column", ErrUnsupportedModel, model.KeyCameraModel)
}

// Resolve is Lookup, except that Auto defers to Detect on t.
func Resolve(id string, t *model.Table) (Model, error) {
	if strings.EqualFold(strings.TrimSpace(id), Auto) {
		return Detect(t)
	}
	return Lookup(id)
}

// Names lists the accepted identifiers.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func abbreviate(table map[string]string, raw string) string {
	if v, ok := table[raw]; ok {
		return v
	}
	return Unrecognized
}

func normalize(table map[valueKey]string, tag, raw string) string {
	if v, ok := table[valueKey{tag, raw}]; ok {
		return v
	}
	return raw
}
