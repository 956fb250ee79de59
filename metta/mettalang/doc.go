/*
Package mettalang implements the surface syntax of MeTTaTron: a scanner
and parser that compile source text into a State ready to be run.

Surface conventions:

■ S-expressions (a b c); the empty list () is the unit value.

■ A comma-headed list (, g₁ g₂ …) is an explicit conjunction.

■ !e is shorthand for (! e).

■ $name tokens are variables.

■ Integer literals are Longs, decimal literals are Doubles, "…" is a
string, true and false are booleans.

■ Comments run from ; to the end of the line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/
package mettalang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mettatron.lang'.
func tracer() tracing.Trace {
	return tracing.Select("mettatron.lang")
}
