package conform

import (
	"strconv"
	"strings"
)

// pathRef is a persistent JSON Pointer under construction. Segments are only
// joined when an issue is reported, so fail-fast checks never render paths.
type pathRef struct {
	parent *pathRef
	seg    string
}

var rootPath *pathRef

func (p *pathRef) field(name string) *pathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parent: p, seg: esc}
}

func (p *pathRef) index(i int) *pathRef {
	return &pathRef{parent: p, seg: strconv.Itoa(i)}
}

func (p *pathRef) pointer() string {
	if p == nil {
		return "/"
	}
	var parts []string
	for cur := p; cur != nil; cur = cur.parent {
		parts = append(parts, cur.seg)
	}
	b := &strings.Builder{}
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
