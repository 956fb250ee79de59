/*
Package mettajson implements the host-script boundary of MeTTaTron: a
JSON encoding of State values and the single cross-boundary operation,
RunJSON.

Terms are encoded as tagged objects, e.g.

   {"Long": 42}
   {"Atom": "foo"}
   {"SExpr": [{"Atom":"+"}, {"Long":1}, {"Long":2}]}

with the bare string "Nil" for the unit value. A State is the object

   {"pending_exprs": […],
    "environment": {"rules": […], "types": {…}},
    "eval_outputs": […]}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/
package mettajson

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mettatron.json'.
func tracer() tracing.Trace {
	return tracing.Select("mettatron.json")
}
