package docnorm

// ExtractOptions holds configuration for an extraction. It holds no
// references, so copying the struct copies the options.
type ExtractOptions struct {
	includeImages bool
	includeTables bool
	useOCR        bool

	// Page range (1-indexed, inclusive), PDF only.
	ranged    bool
	startPage int
	endPage   int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		includeImages: true,
		includeTables: true,
		useOCR:        true,
	}
}
