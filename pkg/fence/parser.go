package fence

// Parse scans document for editable blocks and returns them in document
// order together with any structural errors. A missing end marker or a nested
// start marker stops the scan; the blocks found before it are still returned.
// Stray end markers and repeated names are reported without stopping.
func Parse(document string) ([]Block, []error) {
	var blocks []Block
	seen := make(map[string]struct{})

	errs := walk(document, func(r region) (bool, error) {
		block := newBlock(document, r)
		blocks = append(blocks, block)
		if _, dup := seen[block.Name]; dup {
			return true, &StructuralError{Kind: ErrDuplicateName, Offset: r.open.Start, Name: block.Name}
		}
		seen[block.Name] = struct{}{}
		return true, nil
	})
	return blocks, errs
}

// Lookup returns the first block named name.
func Lookup(blocks []Block, name string) (Block, bool) {
	for _, block := range blocks {
		if block.Name == name {
			return block, true
		}
	}
	return Block{}, false
}

// Names returns block names in document order.
func Names(blocks []Block) []string {
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, block.Name)
	}
	return out
}
