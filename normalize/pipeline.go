// Package normalize cleans up markdown produced by html to markdown converters.
// Every pass works on the whole document and the passes are meant to run in
// the order of Pipeline.
package normalize

import "regexp"

type Options struct {
	DisableImages bool
	DisableFiles  bool
	// Ignore link targets matching any of these, when rewriting or stripping links
	Ignore []*regexp.Regexp
}

type Pass func(content string) string

type Pipeline []Pass

// NewPipeline builds the ordered list of passes for the given options
func NewPipeline(opts Options) Pipeline {
	p := Pipeline{
		ConvertTables,
		func(content string) string { return RewriteLinkExtensions(content, opts.Ignore) },
	}
	if opts.DisableImages {
		p = append(p, StripImages)
	}
	if opts.DisableFiles {
		p = append(p, func(content string) string { return StripFileLinks(content, opts.Ignore) })
	}
	return append(p,
		RemoveEmptyLinks,
		CollapseListContinuations,
		StripBlankAfterFence,
		TightenLists,
		ReorderHeadings,
		RepairSplitLinks,
		DetectCodeLanguages,
		WrapFlagCells,
		CollapseBlankLines,
	)
}

func (p Pipeline) Run(content string) string {
	for _, pass := range p {
		content = pass(content)
	}
	return content
}
