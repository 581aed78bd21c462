/*
Package asm implements the Coder assembler: a single-pass translator from
line-oriented source text directly into a vm.Memory image.

A line is source iff its first character is ':'; everything else is
comment and is dropped before tokenizing. The remainder of a code line is
split on ASCII space into a flat token stream. Each Compile call tokenizes
one source file into the FIFO and then interprets those tokens; several
files compiled in sequence share one symbol table and write pointer, but
placeholders are resolved at the end of every call, so a file cannot refer
to a name that is only defined in a later file.

Tokens are interpreted left to right against a pre-populated symbol table
(interrupt numbers, configured geometry, character literals) that the
source may add to with "define", "label", "object" and "map". Forward
references -- a label used before it's defined -- are handled by emitting
a zero placeholder cell and recording its name; a final resolution pass
walks every placeholder and fills in the now-complete symbol table,
failing loud on anything left unresolved.
*/
package asm
