package vibrant_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalqb/vibrant"
	"github.com/fractalqb/vibrant/vibrantest"
)

const chapterYAML = `name: chapter-1
paragraphs:
  - runs:
      - text: "The "
      - text: quick brown
        style: {bold: true, font: Lexend, size: 11}
      - text: ""
      - text: " fox"
        style:
          color: "#e6194b"
          underline: false
  - runs: []
`

func TestReadDocument(t *testing.T) {
	doc, err := vibrant.ReadDocument(strings.NewReader(chapterYAML))
	require.NoError(t, err)
	assert.Equal(t, "chapter-1", doc.Name)
	assert.Equal(t, 2, doc.NumParagraphs())
	want := [][]vibrant.Span{
		{
			vibrantest.Plain("The "),
			{Text: "quick brown", Style: vibrant.Style{
				Bold: vibrant.Flag(true),
				Font: "Lexend",
				Size: 11,
			}},
			{Text: " fox", Style: vibrant.Style{
				Color:     &vibrant.RGB{R: 0xe6, G: 0x19, B: 0x4b},
				Underline: vibrant.Flag(false),
			}},
		},
		{},
	}
	if diff := cmp.Diff(want, vibrantest.DocSpans(doc)); diff != "" {
		t.Errorf("spans (-want +got):\n%s", diff)
	}
	assert.Equal(t, "The quick brown fox\n", doc.Text())
}

func TestReadDocument_errors(t *testing.T) {
	for name, src := range map[string]string{
		"empty":         "",
		"unknown field": "name: x\nchapters: []\n",
		"bad color":     "paragraphs:\n  - runs:\n      - text: a\n        style: {color: red}\n",
		"negative size": "paragraphs:\n  - runs:\n      - text: a\n        style: {size: -1}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := vibrant.ReadDocument(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
	t.Run("position", func(t *testing.T) {
		_, err := vibrant.ReadDocument(strings.NewReader(
			"paragraphs:\n  - runs: []\n  - runs:\n      - text: a\n      - text: b\n        style: {size: -2}\n",
		))
		var derr vibrant.DocumentError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, 1, derr.Para)
		assert.Equal(t, 1, derr.Run)
	})
}

func TestDocument_writeRead(t *testing.T) {
	doc, err := vibrant.ReadDocument(strings.NewReader(chapterYAML))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	assert.NotContains(t, buf.String(), "style: {}")
	again, err := vibrant.ReadDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, again.Name)
	if diff := cmp.Diff(vibrantest.DocSpans(doc), vibrantest.DocSpans(again)); diff != "" {
		t.Errorf("spans (-written +read):\n%s", diff)
	}
}

func TestDocument_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	doc, err := vibrant.ReadDocument(strings.NewReader(chapterYAML))
	require.NoError(t, err)
	doc.Name = ""
	file := vibrant.OutputFile(dir, "moby", "_vibrant_vowels")
	assert.Equal(t, filepath.Join(dir, "moby_vibrant_vowels.yaml"), file)
	require.NoError(t, doc.Save(file))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	loaded, err := vibrant.LoadDocument(file)
	require.NoError(t, err)
	assert.Equal(t, "moby_vibrant_vowels", loaded.Name)
	if diff := cmp.Diff(vibrantest.DocSpans(doc), vibrantest.DocSpans(loaded)); diff != "" {
		t.Errorf("spans (-saved +loaded):\n%s", diff)
	}
}

func TestDocument_SaveFails(t *testing.T) {
	doc := vibrant.NewDocument("x")
	err := doc.Save(filepath.Join(t.TempDir(), "missing", "x.yaml"))
	assert.Error(t, err)
}

func TestDocument_EachParagraph(t *testing.T) {
	doc := vibrant.NewDocument("d")
	assert.Zero(t, doc.NumParagraphs())
	assert.Empty(t, doc.Paragraphs())
	for _, txt := range []string{"one", "two", "three"} {
		doc.AddParagraph(vibrant.NewParagraph(vibrantest.Plain(txt)))
	}
	var seen []string
	err := doc.EachParagraph(func(i int, p *vibrant.Paragraph) error {
		seen = append(seen, p.Text())
		if i == 1 {
			return os.ErrClosed
		}
		return nil
	})
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, []string{"one", "two"}, seen)
	assert.Equal(t, "one\ntwo\nthree", doc.Text())
}
