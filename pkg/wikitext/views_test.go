package wikitext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func TestTemplate_Accessors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantName  string
		wantArgs  []string
		wantNames []string
	}{
		{
			name:      "no arguments",
			input:     "{{ Infobox }}",
			wantName:  "Infobox",
			wantArgs:  []string{},
			wantNames: []string{},
		},
		{
			name:      "mixed arguments",
			input:     "{{t1|kw=a|1=|pa|kw2=a|pa2}}",
			wantName:  "t1",
			wantArgs:  []string{"|kw=a", "|1=", "|pa", "|kw2=a", "|pa2"},
			wantNames: []string{"kw", "1", "1", "kw2", "2"},
		},
		{
			name:      "positional shadowed by named",
			input:     "{{t2|a|1|1=}}",
			wantName:  "t2",
			wantArgs:  []string{"|a", "|1", "|1="},
			wantNames: []string{"1", "2", "1"},
		},
		{
			name:      "nested pipes are not separators",
			input:     "{{t|[[a|b]]|{{c|d}}}}",
			wantName:  "t",
			wantArgs:  []string{"|[[a|b]]", "|{{c|d}}"},
			wantNames: []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl := wikitext.Parse(tt.input).Templates()[0]
			assert.Equal(t, tt.wantName, tmpl.Name())

			args := tmpl.Arguments()
			gotArgs := make([]string, len(args))
			gotNames := make([]string, len(args))
			for i, a := range args {
				gotArgs[i] = a.String()
				gotNames[i] = a.Name()
			}
			assert.Equal(t, tt.wantArgs, gotArgs)
			assert.Equal(t, tt.wantNames, gotNames)
		})
	}
}

func TestArgument_Value(t *testing.T) {
	t.Parallel()

	args := wikitext.Parse("{{t| a = x |y}}").Templates()[0].Arguments()
	require.Len(t, args, 2)

	assert.False(t, args[0].Positional())
	assert.Equal(t, "a", args[0].Name())
	assert.Equal(t, " x ", args[0].Value())

	assert.True(t, args[1].Positional())
	assert.Equal(t, "y", args[1].Value())
}

func TestParserFunction_Accessors(t *testing.T) {
	t.Parallel()

	pf := wikitext.Parse("{{#if:a|b|c}}").ParserFunctions()
	require.Len(t, pf, 1)
	assert.Equal(t, "#if", pf[0].Name())

	args := pf[0].Arguments()
	require.Len(t, args, 3)
	assert.Equal(t, ":a", args[0].String())
	assert.Equal(t, "a", args[0].Value())
	assert.Equal(t, "1", args[0].Name())
	assert.Equal(t, "|c", args[2].String())
	assert.Equal(t, "3", args[2].Name())

	pf = wikitext.Parse("{{uc: word}}").ParserFunctions()
	require.Len(t, pf, 1)
	assert.Equal(t, "uc", pf[0].Name())
}

func TestParameter_Accessors(t *testing.T) {
	t.Parallel()

	params := wikitext.Parse("{{{p|d}}} {{{ q }}}").Parameters()
	require.Len(t, params, 2)

	assert.Equal(t, "p", params[0].Name())
	def, ok := params[0].Default()
	assert.True(t, ok)
	assert.Equal(t, "d", def)

	assert.Equal(t, "q", params[1].Name())
	_, ok = params[1].Default()
	assert.False(t, ok)
}

func TestWikiLink_Accessors(t *testing.T) {
	t.Parallel()

	links := wikitext.Parse("[[Foo|bar]] [[Baz]]").WikiLinks()
	require.Len(t, links, 2)

	assert.Equal(t, "Foo", links[0].Target())
	text, ok := links[0].Text()
	assert.True(t, ok)
	assert.Equal(t, "bar", text)

	assert.Equal(t, "Baz", links[1].Target())
	_, ok = links[1].Text()
	assert.False(t, ok)
}

func TestComment_Contents(t *testing.T) {
	t.Parallel()

	comments := wikitext.Parse("a<!-- x -->b<!--open").Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, " x ", comments[0].Contents())
	assert.Equal(t, "open", comments[1].Contents())
}

func TestExtensionTag_Accessors(t *testing.T) {
	t.Parallel()

	tags := wikitext.Parse(`<ref name=foo group='g' /><ref name="bar">{{cite}}</ref>`).ExtensionTags()
	require.Len(t, tags, 2)

	assert.Equal(t, "ref", tags[0].Name())
	assert.True(t, tags[0].SelfClosing())
	assert.Empty(t, tags[0].Contents())
	name, ok := tags[0].Attribute("NAME")
	assert.True(t, ok)
	assert.Equal(t, "foo", name)
	group, ok := tags[0].Attribute("group")
	assert.True(t, ok)
	assert.Equal(t, "g", group)
	_, ok = tags[0].Attribute("missing")
	assert.False(t, ok)

	assert.False(t, tags[1].SelfClosing())
	assert.Equal(t, "{{cite}}", tags[1].Contents())
	name, _ = tags[1].Attribute("name")
	assert.Equal(t, "bar", name)
	assert.Len(t, tags[1].Templates(), 1)
}

func TestExtensionTag_Language(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: `<syntaxhighlight lang="Python">x = 1</syntaxhighlight>`, want: "python"},
		{input: `<syntaxhighlight lang=js>x</syntaxhighlight>`, want: "javascript"},
		{input: "<source>package main\n</source>", want: "go"},
		{input: "<math>x^2</math>", want: "latex"},
		{input: "<pre>hello</pre>", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			tags := wikitext.Parse(tt.input).ExtensionTags()
			require.Len(t, tags, 1)
			assert.Equal(t, tt.want, tags[0].Language())
		})
	}
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := wikitext.Parse("{{a|[[b|{{c}}]]}}")
	templates := root.Templates()
	require.Len(t, templates, 2)
	inner := templates[1]
	require.Equal(t, "{{c}}", inner.String())

	ancestors := inner.Ancestors()
	require.Len(t, ancestors, 2)
	assert.Equal(t, spans.WikiLink, ancestors[0].Category())
	assert.Equal(t, "[[b|{{c}}]]", ancestors[0].String())
	assert.Equal(t, spans.Template, ancestors[1].Category())

	assert.Equal(t, "[[b|{{c}}]]", inner.Parent().String())
	assert.Equal(t, "{{a|[[b|{{c}}]]}}", inner.Parent(spans.Template).String())
	assert.Nil(t, templates[0].Parent())
	assert.Empty(t, root.Ancestors())
}

func TestShadow(t *testing.T) {
	t.Parallel()

	root := wikitext.Parse("a{{b}}c<!--d-->[[e]]")

	assert.Equal(t, "a_____c        _____", string(root.Shadow()))
	assert.Equal(t, "a{{b}}c        [[e]]", string(root.Shadow(spans.Comment)))
}

func TestShadow_RescansEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "flat", input: "a{{b}}c<!--d-->[[e]]"},
		{name: "nested templates", input: "{{cite|{{t1}}|{{t2}}}}"},
		{name: "nested parser functions", input: "{{#if:{{#if:a|b}}|c}}"},
		{name: "nested parameters", input: "{{{a|{{{b}}}}}}"},
		{name: "table inside template", input: "{{t|\n{|a\n|b\n|}\n}}"},
		{name: "link inside template text", input: "{{text |[[A|}}]] }}"},
		{name: "tag around template", input: "<ref name=n>{{a|[[b]]}}</ref><!--c-->"},
		{name: "unclosed", input: "x {{a|{{b}} [[c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := wikitext.Parse(tt.input)
			require.NoError(t, root.Insert(0, "{{z}}"))

			shadow := root.Shadow()
			require.Len(t, shadow, root.Len())
			table := spans.Scan(shadow)
			for _, c := range spans.ScannedCategories() {
				assert.Zero(t, table.Count(c), "category %s in %q", c, shadow)
			}
		})
	}
}

func TestShadow_KeepsOwnSpan(t *testing.T) {
	t.Parallel()

	tmpl := wikitext.Parse("{{b|{{c}}}}").Templates()[0]
	assert.Equal(t, "{{b|_____}}", string(tmpl.Shadow()))
}

func TestShadow_FollowsEdits(t *testing.T) {
	t.Parallel()

	root := wikitext.Parse("a{{b}}")
	first := root.Shadow()
	first[0] = 'Z'
	assert.Equal(t, "a_____", string(root.Shadow()))

	require.NoError(t, root.Insert(0, "{{x}}"))
	assert.Equal(t, "_____a_____", string(root.Shadow()))
}

func TestSections(t *testing.T) {
	t.Parallel()

	root := wikitext.Parse("lead\n== A ==\na\n=== B ===\nb\n== C ==\nc")
	sections := root.Sections()
	require.Len(t, sections, 4)

	assert.Equal(t, "lead\n", sections[0].String())
	assert.Equal(t, 0, sections[0].Level())
	_, ok := sections[0].Title()
	assert.False(t, ok)
	assert.Equal(t, "lead\n", sections[0].Contents())

	assert.Equal(t, "== A ==\na\n=== B ===\nb\n", sections[1].String())
	assert.Equal(t, 2, sections[1].Level())
	title, ok := sections[1].Title()
	assert.True(t, ok)
	assert.Equal(t, " A ", title)
	assert.Equal(t, "a\n=== B ===\nb\n", sections[1].Contents())

	assert.Equal(t, "=== B ===\nb\n", sections[2].String())
	assert.Equal(t, 3, sections[2].Level())

	assert.Equal(t, "== C ==\nc", sections[3].String())
	assert.Equal(t, "c", sections[3].Contents())
}

func TestSections_HeadingLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		wantLevel int
		wantTitle string
	}{
		{input: "=a=", wantLevel: 1, wantTitle: "a"},
		{input: "===", wantLevel: 1, wantTitle: "="},
		{input: "==a=", wantLevel: 1, wantTitle: "=a"},
		{input: "======= a =======", wantLevel: 6, wantTitle: "= a ="},
		{input: "== a ==  ", wantLevel: 2, wantTitle: " a "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			sections := wikitext.Parse(tt.input).Sections()
			require.Len(t, sections, 2)
			assert.Equal(t, tt.wantLevel, sections[1].Level())
			title, ok := sections[1].Title()
			assert.True(t, ok)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestSections_IgnoresMaskedHeadings(t *testing.T) {
	t.Parallel()

	sections := wikitext.Parse("{{a|\n== x ==\n}}\n<!--\n== y ==\n-->").Sections()
	assert.Len(t, sections, 1)
}

func TestTemplate_SetName(t *testing.T) {
	t.Parallel()

	root := wikitext.Parse("a{{ old |x={{old}}}}b")
	templates := root.Templates()
	require.Len(t, templates, 2)
	args := templates[0].Arguments()
	require.Len(t, args, 1)

	require.NoError(t, templates[0].SetName("brand new"))

	assert.Equal(t, "a{{ brand new |x={{old}}}}b", root.String())
	assert.Equal(t, "brand new", templates[0].Name())
	assert.Equal(t, "|x={{old}}", args[0].String())
	assert.Equal(t, "{{old}}", templates[1].String())

	require.NoError(t, templates[1].SetName("z"))
	assert.Equal(t, "a{{ brand new |x={{z}}}}b", root.String())

	require.NoError(t, root.SetString(""))
	require.ErrorIs(t, templates[0].SetName("q"), wikitext.ErrDeadIndex)
}
