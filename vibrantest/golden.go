// Package vibrantest supports testing code that uses vibrant.
//
// Golden documents are kept as YAML files, by default in testdata/ named
// after the test:
//
//	func TestColorize(t *testing.T) {
//		doc := colorSomething()
//		vibrantest.Fatal(t, "", doc)
//	}
//
// compares doc run by run with testdata/TestColorize.yaml.
package vibrantest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/vibrant"
	"github.com/google/go-cmp/cmp"
)

// When this environment variable is set to a regexp and the name of the current
// test matches calls to Error or Fatal will record the document as new golden
// data instead of comparing it. E.g.
//
//	VIBRANTEST_RECORD=TestRecording go test .
const RecordEnv = "VIBRANTEST_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go help
// test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, doc *vibrant.Document) error {
	return defaultConfig.Error(t, hint, doc)
}

func Fatal(t *testing.T, hint string, doc *vibrant.Document) {
	defaultConfig.Fatal(t, hint, doc)
}

func Record(t *testing.T, hint string, doc *vibrant.Document) {
	defaultConfig.Record(t, hint, doc)
}

type RefRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = vibrant.DocExt
	NoSuffix  = "\x00"
)

func (rr RefRepo) Filename(t *testing.T, hint string) string {
	suffix := rr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	RefFileName     func(t *testing.T, hint string) string
	RecordOverwrite bool
}

var defaultConfig = Config{
	RefFileName:     RefRepo{Dir: GoTestdataDir}.Filename,
	RecordOverwrite: false,
}

func (cfg Config) Error(t *testing.T, hint string, doc *vibrant.Document) error {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, doc)
		return nil
	}
	err := cfg.compare(t, hint, doc)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, doc *vibrant.Document) {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, doc)
	} else if err := cfg.compare(t, hint, doc); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("vibrantest: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg *Config) compare(t *testing.T, hint string, doc *vibrant.Document) error {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); os.IsNotExist(err) {
		t.Logf("to record a golden document run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("golden document %s does not exist", reffile)
	}
	ref, err := vibrant.LoadDocument(reffile)
	if err != nil {
		return err
	}
	if ref.LineSep != doc.LineSep {
		return fmt.Errorf("line separator %q differs from %q in %s", doc.LineSep, ref.LineSep, reffile)
	}
	if diff := cmp.Diff(DocSpans(ref), DocSpans(doc)); diff != "" {
		return fmt.Errorf("document differs from %s (-want +got):\n%s", reffile, diff)
	}
	return nil
}

func (cfg Config) Record(t *testing.T, hint string, doc *vibrant.Document) {
	t.Helper()
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("Record: golden document '%s' already exists", reffile)
	}
	dir := filepath.Dir(reffile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	if err := doc.Save(reffile); err != nil {
		t.Fatal(err)
	}
	t.Errorf("vibrantest recorder wrote: %s", reffile)
}

// DocSpans returns the spans of all paragraphs of doc.
func DocSpans(doc *vibrant.Document) [][]vibrant.Span {
	var res [][]vibrant.Span
	doc.EachParagraph(func(_ int, p *vibrant.Paragraph) error {
		res = append(res, p.Spans())
		return nil
	})
	return res
}
