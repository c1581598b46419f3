package tchcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock returns the first block of the given type, or nil when
// there is none. Every further block of that type is reported as a
// duplicate pointing back at the first one.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var first *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if first == nil {
			first = block
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %q block", blockType),
			Detail:   fmt.Sprintf("Only one %q block is allowed. The first one is at %s.", blockType, first.DefRange),
			Subject:  block.DefRange.Ptr(),
		})
	}

	return first, diags
}
