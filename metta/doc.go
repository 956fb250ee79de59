/*
Package metta implements the core of the MeTTaTron engine: a term model,
a structural pattern matcher, an append-only rule environment, the
non-deterministic reducer, and the composable State value threaded
across successive run invocations.

Every value the engine manipulates is a Term, a tagged variant covering
literals, atoms, variables, generic S-expressions, explicit conjunctions,
first-class errors and advisory type annotations. Terms are immutable;
all operations on environments and states return fresh values, so that
independent evaluation chains derived from a common ancestor can never
observe each other's additions.

Reduction is non-deterministic in the logic-programming sense: a single
expression may rewrite to zero, one or many results when several rules
match. Branches are enumerated eagerly within a single call; there are
no suspension points and no internal concurrency.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/
package metta

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mettatron.metta'.
func tracer() tracing.Trace {
	return tracing.Select("mettatron.metta")
}
