// Command openscap is a thin CLI driver exercising the policy evaluation
// core end-to-end against in-memory fixture content (spec.md §1: the XML
// parsers that would normally produce a benchmark are out of scope, so this
// driver consumes the internal/adapter/outbound/memory fixture set instead).
package main

import "github.com/berise/openscap/cmd/openscap/cmd"

func main() {
	cmd.Execute()
}
