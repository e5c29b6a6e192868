package bugfix

import (
	"reflect"
	"strings"

	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// DefaultLabel is the label researchers set on manually validated bugfixes.
const DefaultLabel = "validated_bugfix"

// Detector decides whether a commit is a validated bugfix that can be exported.
type Detector struct {
	labels          []string
	requiredParents int
}

// NewDetector creates a Detector requiring every label in labels to be truthy
// and the commit to have exactly requiredParents parents. Blank labels are
// skipped; if none remain DefaultLabel is used.
func NewDetector(labels []string, requiredParents int) *Detector {
	kept := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		kept = append(kept, DefaultLabel)
	}
	return &Detector{labels: kept, requiredParents: requiredParents}
}

// IsBugfix returns true if every configured label is present and truthy.
func (d *Detector) IsBugfix(labels map[string]any) bool {
	if labels == nil {
		return false
	}
	for _, l := range d.labels {
		v, ok := labels[l]
		if !ok || !Truthy(v) {
			return false
		}
	}
	return true
}

// Qualifies reports whether the commit is exported: a labelled bugfix with
// the required number of parents. Merge commits are ambiguous because the
// labelled lines could have been diffed against either parent.
func (d *Detector) Qualifies(c smartshark.Commit) bool {
	return d.IsBugfix(c.Labels) && len(c.Parents) == d.requiredParents
}

// Truthy reports whether a decoded label value counts as set. Absent values,
// false, zero numbers, empty strings and empty collections are not.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
