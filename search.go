package dataspec

import (
	"github.com/dataspec-format/dataspec/datapath"
	"github.com/dataspec-format/dataspec/ir"
)

// Search parses a datapath expression and resolves it against doc.
// The result is a copy detached from doc. Parse failures come back as
// datapath.SyntaxError, resolution failures as datapath.ResolveError.
func Search(doc *ir.Node, path string) (*ir.Node, error) {
	p, err := datapath.Parse(path)
	if err != nil {
		return nil, err
	}
	return datapath.Resolve(doc, p)
}
