package mdext

/*
Default Block Parsers
=====================
SetextHeadingParser     100
ThematicBreakParser     200
ListParser              300
ListItemParser          400
CodeBlockParser         500
ATXHeadingParser        600
FencedCodeBlockParser   700
BlockquoteParser        800
HTMLBlockParser         900
ParagraphParser         1000

Default Inline Parsers
======================
CodeSpanParser   100
LinkParser       200
AutoLinkParser   300
RawHTMLParser    400
EmphasisParser   500

extensions
==========
DefinitionListParser         101
FootnoteParser               101
StrikethroughParser          500
FootnoteBlockParser          999
LinkifyParser                999
TypographerParser            9999
FootnoteASTTransformer       999
*/

// Priorities of the extensions in this module. Lower runs first.
const (
	PriorityContainerParser      = 750 // after fenced code, before blockquote
	PriorityContainerTransformer = 100
	PriorityContainerRenderer    = 500

	PriorityAbbrDefinitionParser = 90 // before list items claim '*'
	PriorityAbbrTransformer      = 200
	PriorityAbbrRenderer         = 500

	PriorityIconParser   = 150 // before links and autolinks
	PriorityIconRenderer = 500

	PriorityLanguageTransformer = 300

	PriorityHeadingIDTransformer = 50 // before permalinks (100)
)
