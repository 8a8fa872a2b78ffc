package commands

var builtins = []Traits{
	// block
	{Name: "brief", Kind: KindBlock, Flags: FlagBrief},
	{Name: "short", Kind: KindBlock, Flags: FlagBrief},
	{Name: "result", Kind: KindBlock, Flags: FlagReturns},
	{Name: "return", Kind: KindBlock, Flags: FlagReturns},
	{Name: "returns", Kind: KindBlock, Flags: FlagReturns},
	{Name: "author", Kind: KindBlock},
	{Name: "authors", Kind: KindBlock},
	{Name: "pre", Kind: KindBlock},
	{Name: "post", Kind: KindBlock},
	{Name: "details", Kind: KindBlock},
	{Name: "note", Kind: KindBlock},
	{Name: "warning", Kind: KindBlock},
	{Name: "since", Kind: KindBlock},
	{Name: "deprecated", Kind: KindBlock},
	{Name: "see", Kind: KindBlock},
	{Name: "sa", Kind: KindBlock},
	{Name: "todo", Kind: KindBlock},
	{Name: "version", Kind: KindBlock},
	{Name: "throws", Kind: KindBlock, NumArgs: 1},
	{Name: "throw", Kind: KindBlock, NumArgs: 1},
	{Name: "exception", Kind: KindBlock, NumArgs: 1},

	// param
	{Name: "param", Kind: KindParam, Flags: FlagTakesDirection},
	{Name: "tparam", Kind: KindParam},
	{Name: "templateparam", Kind: KindParam},

	// inline, one word argument
	{Name: "b", Kind: KindInline, NumArgs: 1, Render: RenderBold},
	{Name: "c", Kind: KindInline, NumArgs: 1, Render: RenderMonospaced},
	{Name: "p", Kind: KindInline, NumArgs: 1, Render: RenderMonospaced},
	{Name: "a", Kind: KindInline, NumArgs: 1, Render: RenderEmphasized},
	{Name: "e", Kind: KindInline, NumArgs: 1, Render: RenderEmphasized},
	{Name: "em", Kind: KindInline, NumArgs: 1, Render: RenderEmphasized},

	// verbatim blocks
	{Name: "code", Kind: KindVerbatimBlock, EndName: "endcode"},
	{Name: "verbatim", Kind: KindVerbatimBlock, EndName: "endverbatim"},
	{Name: "htmlonly", Kind: KindVerbatimBlock, EndName: "endhtmlonly"},
	{Name: "latexonly", Kind: KindVerbatimBlock, EndName: "endlatexonly"},
	{Name: "xmlonly", Kind: KindVerbatimBlock, EndName: "endxmlonly"},
	{Name: "manonly", Kind: KindVerbatimBlock, EndName: "endmanonly"},
	{Name: "rtfonly", Kind: KindVerbatimBlock, EndName: "endrtfonly"},
	{Name: "dot", Kind: KindVerbatimBlock, EndName: "enddot"},
	{Name: "msc", Kind: KindVerbatimBlock, EndName: "endmsc"},
	{Name: "f$", Kind: KindVerbatimBlock, EndName: "f$"},
	{Name: "f[", Kind: KindVerbatimBlock, EndName: "f]"},
	{Name: "f{", Kind: KindVerbatimBlock, EndName: "f}"},

	// verbatim lines
	{Name: "fn", Kind: KindVerbatimLine},
	{Name: "var", Kind: KindVerbatimLine},
	{Name: "property", Kind: KindVerbatimLine},
	{Name: "typedef", Kind: KindVerbatimLine},
	{Name: "overload", Kind: KindVerbatimLine},
	{Name: "defgroup", Kind: KindVerbatimLine},
	{Name: "ingroup", Kind: KindVerbatimLine},
	{Name: "addtogroup", Kind: KindVerbatimLine},
	{Name: "weakgroup", Kind: KindVerbatimLine},
	{Name: "name", Kind: KindVerbatimLine},
	{Name: "section", Kind: KindVerbatimLine},
	{Name: "subsection", Kind: KindVerbatimLine},
	{Name: "subsubsection", Kind: KindVerbatimLine},
	{Name: "paragraph", Kind: KindVerbatimLine},
	{Name: "mainpage", Kind: KindVerbatimLine},
	{Name: "subpage", Kind: KindVerbatimLine},
	{Name: "ref", Kind: KindVerbatimLine},
}
