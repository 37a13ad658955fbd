package typeinfo

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// typeIDs interns reflect types so that Key stays unique for types whose String forms collide
// (same package name, different import paths).
var (
	typeIDs    sync.Map // map[reflect.Type]uint64
	typeIDNext atomic.Uint64
)

func typeID(rt reflect.Type) uint64 {
	if id, ok := typeIDs.Load(rt); ok {
		return id.(uint64)
	}
	id, _ := typeIDs.LoadOrStore(rt, typeIDNext.Add(1))
	return id.(uint64)
}

// Key returns a string usable as a map key. Two descriptors have the same key exactly when
// they are Equal.
func Key(t Type) string {
	var b strings.Builder
	writeKey(&b, t)
	return b.String()
}

func writeKey(b *strings.Builder, t Type) {
	switch v := t.(type) {
	case simple:
		b.WriteString(v.rt.String())
		b.WriteByte('#')
		b.WriteString(strconv.FormatUint(typeID(v.rt), 10))
	case variable:
		b.WriteByte('$')
		b.WriteString(v.name)
	case *parameterized:
		b.WriteString(v.raw.name)
		b.WriteByte('#')
		b.WriteString(strconv.FormatUint(v.raw.id, 10))
		b.WriteByte('<')
		for i, a := range v.args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeKey(b, a)
		}
		b.WriteByte('>')
	default:
		b.WriteString("<nil>")
	}
}
