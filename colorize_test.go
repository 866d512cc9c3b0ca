package vibrant_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalqb/vibrant"
	"github.com/fractalqb/vibrant/vibrantest"
)

var (
	red   = vibrant.RGB{R: 230, G: 25, B: 75}
	green = vibrant.RGB{R: 60, G: 180, B: 75}
)

func vowelTable() *vibrant.ColorTable {
	ct := new(vibrant.ColorTable)
	ct.Set("a", red)
	ct.Set("e", green)
	return ct
}

func TestColorizer_Paragraph(t *testing.T) {
	p := vibrant.NewParagraph(vibrantest.Bold("Late "), vibrantest.Plain("bAke"))
	clr := vibrant.Colorizer{Table: vowelTable()}
	rep, err := clr.Paragraph(p)
	require.NoError(t, err)
	assert.Equal(t, 9, rep.Units)
	assert.Equal(t, 3, rep.Colored)
	assert.Equal(t, map[string]int{"a": 1, "e": 2}, rep.Letters)
	vibrantest.CheckParagraph(t, p, "Late bAke")
	assert.Equal(t, 9, p.NumRuns(), "each unit must be a run")

	boldRed := vibrant.Style{Bold: vibrant.Flag(true), Color: &red}
	boldGreen := vibrant.Style{Bold: vibrant.Flag(true), Color: &green}
	want := []vibrant.Span{
		vibrantest.Bold("L"),
		{Text: "a", Style: boldRed},
		vibrantest.Bold("t"),
		{Text: "e", Style: boldGreen},
		vibrantest.Bold(" "),
		vibrantest.Plain("b"),
		vibrantest.Plain("A"),
		vibrantest.Plain("k"),
		vibrantest.Colored("e", green),
	}
	if diff := cmp.Diff(want, p.Spans()); diff != "" {
		t.Errorf("spans (-want +got):\n%s", diff)
	}
}

func TestColorizer_noTable(t *testing.T) {
	p := vibrant.NewParagraph(vibrantest.Plain("abc"))
	var clr vibrant.Colorizer
	rep, err := clr.Paragraph(p)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Units)
	assert.Zero(t, rep.Colored)

	doc := vibrant.NewDocument("plain")
	doc.AddParagraph(p)
	_, err = clr.Document(context.Background(), doc)
	require.NoError(t, err)

	var ct *vibrant.ColorTable
	assert.Zero(t, ct.Len())
	assert.Empty(t, ct.Letters())
}

func TestColorizer_coalesce(t *testing.T) {
	p := vibrant.NewParagraph(vibrantest.Plain("beet tea"))
	clr := vibrant.Colorizer{Table: vowelTable(), Coalesce: true}
	_, err := clr.Paragraph(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "ee", "t t", "e", "a"}, vibrantest.Texts(p))
}

func TestColorizer_grapheme(t *testing.T) {
	const (
		acuteE = "e\u0301"
		text   = "caf" + acuteE + " ae"
	)
	ct := vowelTable()
	ct.Set(acuteE, red)

	t.Run("rune", func(t *testing.T) {
		p := vibrant.NewParagraph(vibrantest.Plain(text))
		clr := vibrant.Colorizer{Table: ct}
		rep, err := clr.Paragraph(p)
		require.NoError(t, err)
		assert.Equal(t, 8, rep.Units)
		assert.Equal(t, map[string]int{"a": 2, "e": 2}, rep.Letters)
	})
	t.Run("grapheme", func(t *testing.T) {
		p := vibrant.NewParagraph(vibrantest.Plain(text))
		clr := vibrant.Colorizer{Table: ct, Unit: vibrant.UnitGrapheme}
		rep, err := clr.Paragraph(p)
		require.NoError(t, err)
		assert.Equal(t, 7, rep.Units)
		assert.Equal(t, map[string]int{"a": 2, "e": 1, acuteE: 1}, rep.Letters)
		assert.Contains(t, vibrantest.Texts(p), acuteE)
		vibrantest.CheckParagraph(t, p, text)
	})
}

func TestColorizer_Document(t *testing.T) {
	doc, err := vibrant.Prepare{Name: "book"}.Text(strings.NewReader("A tale\n\nthe end"))
	require.NoError(t, err)
	var logbuf bytes.Buffer
	clr := vibrant.Colorizer{
		Table: vowelTable(),
		Log:   slog.New(slog.NewTextHandler(&logbuf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	rep, err := clr.Document(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Paragraphs)
	assert.Equal(t, 13, rep.Units)
	assert.Equal(t, 4, rep.Colored)
	assert.Equal(t, map[string]int{"a": 1, "e": 3}, rep.Letters)
	assert.Equal(t, "A tale\n\nthe end", doc.Text())
	assert.Contains(t, logbuf.String(), "msg=colorized")
	assert.Contains(t, logbuf.String(), "msg=\"paragraph done\"")
}

func TestColorizer_canceled(t *testing.T) {
	doc, err := vibrant.Prepare{}.Text(strings.NewReader("a\ne\n"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clr := vibrant.Colorizer{Table: vowelTable()}
	rep, err := clr.Document(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Paragraphs)
}

func TestFontReplacement_Apply(t *testing.T) {
	doc := vibrant.NewDocument("f")
	doc.AddParagraph(vibrant.NewParagraph(vibrantest.Bold("ab"), vibrantest.Plain("c")))
	doc.AddParagraph(vibrant.NewParagraph(vibrantest.Colored("d", red)))

	assert.Zero(t, vibrant.FontReplacement{}.Apply(doc))
	n := vibrant.FontReplacement{Name: "Lexend", Size: 14}.Apply(doc)
	assert.Equal(t, 3, n)
	n = vibrant.FontReplacement{Size: 16}.Apply(doc)
	assert.Equal(t, 3, n)
	for _, spans := range vibrantest.DocSpans(doc) {
		for _, s := range spans {
			assert.Equal(t, "Lexend", s.Style.Font, s.Text)
			assert.Equal(t, vibrant.Pt(16), s.Style.Size, s.Text)
		}
	}
	p := doc.Paragraphs()[1]
	assert.Equal(t, red, *p.Style(p.First()).Color, "color must survive font change")
}

func TestParseUnit(t *testing.T) {
	for s, want := range map[string]vibrant.Unit{
		"":         vibrant.UnitRune,
		"rune":     vibrant.UnitRune,
		"Grapheme": vibrant.UnitGrapheme,
	} {
		u, err := vibrant.ParseUnit(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, u, s)
	}
	_, err := vibrant.ParseUnit("word")
	assert.Error(t, err)
}
