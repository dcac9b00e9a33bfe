package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// AddContext carries an additive root-offset through the builder so
// that spans of symbols synthesized from embedded definitions (e.g. a
// definition file quoted inside a host comment) are shifted into the
// host file's coordinate system. Zero value applies no shift.
type AddContext struct {
	RootOffset uint32
}

// shift adds c.RootOffset to r, saturating at uint32 max rather than
// wrapping.
func (c AddContext) shift(r syntax.TextRange) syntax.TextRange {
	if c.RootOffset == 0 {
		return r
	}
	return syntax.TextRange{
		Start: saturatingAdd(r.Start, c.RootOffset),
		End:   saturatingAdd(r.End, c.RootOffset),
	}
}

func saturatingAdd(a, b uint32) uint32 {
	sum := a + b
	if sum < a { // overflow
		return ^uint32(0)
	}
	return sum
}
