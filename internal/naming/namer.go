package naming

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/model"
)

// Namer assigns names to the rows of one sorted batch. It keeps a counter
// per day that advances whenever a new shot group starts, and makes names
// unique within a directory by appending _2, _3, ...
type Namer struct {
	cam      camera.Model
	prefix   string
	counters map[string]int
	used     map[string]bool
}

// NewNamer returns a Namer for a batch shot with cam.
func NewNamer(cam camera.Model, prefix string) *Namer {
	return &Namer{
		cam:      cam,
		prefix:   prefix,
		counters: make(map[string]int),
		used:     make(map[string]bool),
	}
}

// Next names row. Rows must be passed in table order.
func (n *Namer) Next(row model.Row) (Result, error) {
	c := n.cam.Classify(row)
	day := DateToken(row)
	if !c.Grouped() || SequenceNumber(row) <= 1 || n.counters[day] == 0 {
		n.counters[day]++
	}

	res, err := Synthesize(row, c, n.cam, Params{Prefix: n.prefix, Counter: n.counters[day]})
	if err != nil {
		return Result{}, err
	}

	dir := row.Value(string(model.KeyDirectory))
	ext := filepath.Ext(res.Name)
	stem := strings.TrimSuffix(res.Name, ext)
	name := res.Name
	for i := 2; n.used[usedKey(dir, name)]; i++ {
		name = stem + "_" + strconv.Itoa(i) + ext
	}
	n.used[usedKey(dir, name)] = true
	res.Name = name
	return res, nil
}

func usedKey(dir, name string) string {
	return dir + "\x00" + strings.ToLower(name)
}
