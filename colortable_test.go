package vibrant_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalqb/vibrant"
)

func TestReadColorTable(t *testing.T) {
	ct, err := vibrant.ReadColorTable(strings.NewReader(`letter,r,g,b
a,230,25,75
E,60,180,75
i,255,225.0,25
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "E", "i"}, ct.Letters())
	assert.Equal(t, 3, ct.Len())
	c, ok := ct.Lookup("E")
	assert.True(t, ok)
	assert.Equal(t, vibrant.RGB{R: 60, G: 180, B: 75}, c)
	_, ok = ct.Lookup("e")
	assert.False(t, ok, "lookup must be case-sensitive")
	c, _ = ct.Lookup("i")
	assert.Equal(t, vibrant.RGB{R: 255, G: 225, B: 25}, c)
}

func TestReadColorTable_columns(t *testing.T) {
	ct, err := vibrant.ReadColorTable(strings.NewReader("\ufeffname,b,letter,g,r\n" +
		"vowel a,3,a,2,1\n" +
		"vowel o,6,o,5,4\n" +
		"again a,9,a,8,7\n",
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "o"}, ct.Letters())
	c, _ := ct.Lookup("a")
	assert.Equal(t, vibrant.RGB{R: 7, G: 8, B: 9}, c, "last row must win")
	c, _ = ct.Lookup("o")
	assert.Equal(t, vibrant.RGB{R: 4, G: 5, B: 6}, c)
}

func TestReadColorTable_errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		line int
	}{
		{"empty", "", 1},
		{"missing column", "letter,r,g\na,1,2\n", 1},
		{"duplicate column", "letter,r,g,b,r\n", 1},
		{"out of range", "letter,r,g,b\na,1,2,3\ne,1,256,3\n", 3},
		{"negative", "letter,r,g,b\na,-1,2,3\n", 2},
		{"fraction", "letter,r,g,b\na,1.5,2,3\n", 2},
		{"not a number", "letter,r,g,b\na,x,2,3\n", 2},
		{"empty letter", "letter,r,g,b\n,1,2,3\n", 2},
		{"short record", "letter,r,g,b\na,1\n", 2},
		{"bad quote", "letter,r,g,b\n\"a,1,2,3\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vibrant.ReadColorTable(strings.NewReader(tt.csv))
			var terr vibrant.TableError
			require.ErrorAs(t, err, &terr)
			if tt.line > 0 {
				assert.Equal(t, tt.line, terr.Line)
			}
		})
	}
}

func TestLoadColorTable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "colors.csv")
	require.NoError(t, os.WriteFile(file, []byte("letter,r,g,b\ny,1,2,3\n"), 0666))
	ct, err := vibrant.LoadColorTable(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, ct.Letters())

	_, err = vibrant.LoadColorTable(filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
