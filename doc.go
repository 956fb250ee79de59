/*
Package mettatron is a compiler and evaluator for a small homoiconic
term-rewriting language in the MeTTa family.

Programs are symbolic expressions over atoms, literals, variables and
compound forms. Execution rewrites expressions against user-defined
rules and a fixed set of built-in special forms, producing a possibly
empty, possibly multi-valued sequence of results. Package structure is
as follows:

■ metta: Package metta implements the core engine: the term model,
pattern matcher, rule environment, reducer and the composable State
threaded across successive run invocations.

■ metta/mettalang: Package mettalang implements the surface syntax:
a lexer and parser that compile source text into a pending State.

■ metta/mettajson: Package mettajson implements the JSON state handoff
used by host scripting layers.

The base package contains the Token and Span types shared by the
scanner and parser of metta/mettalang.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The MeTTaTron Authors

*/
package mettatron
