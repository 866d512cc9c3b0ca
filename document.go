package vibrant

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.fractalqb.de/fractalqb/icontainer/islist"
	"gopkg.in/yaml.v3"
)

// Document is an ordered sequence of paragraphs.
type Document struct {
	Name string
	// LineSep separates paragraphs when the document is rendered as plain
	// text. Empty means "\n".
	LineSep string

	paras *islist.List
}

func NewDocument(name string) *Document {
	return &Document{Name: name}
}

// AddParagraph appends p to the document. A paragraph must not be added to
// more than one document.
func (doc *Document) AddParagraph(p *Paragraph) {
	if doc.paras == nil {
		doc.paras = islist.New(p)
	} else {
		doc.paras.PushBack(p)
	}
}

func (doc *Document) NumParagraphs() int {
	if doc.paras == nil {
		return 0
	}
	return doc.paras.Len()
}

// EachParagraph calls do for all paragraphs in order and stops at the first
// error, which is returned.
func (doc *Document) EachParagraph(do func(i int, p *Paragraph) error) error {
	if doc.paras == nil {
		return nil
	}
	i := 0
	for n := doc.paras.Front(); n != nil; n = n.ListNext() {
		if err := do(i, n.(*Paragraph)); err != nil {
			return err
		}
		i++
	}
	return nil
}

func (doc *Document) Paragraphs() []*Paragraph {
	res := make([]*Paragraph, 0, doc.NumParagraphs())
	doc.EachParagraph(func(_ int, p *Paragraph) error {
		res = append(res, p)
		return nil
	})
	return res
}

// Text returns the document text with paragraphs separated by LineSep.
func (doc *Document) Text() string {
	sep := doc.LineSep
	if sep == "" {
		sep = "\n"
	}
	var sb strings.Builder
	doc.EachParagraph(func(i int, p *Paragraph) error {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(p.Text())
		return nil
	})
	return sb.String()
}

type docFile struct {
	Name       string     `yaml:"name,omitempty"`
	LineSep    string     `yaml:"line-sep,omitempty"`
	Paragraphs []paraFile `yaml:"paragraphs"`
}

type paraFile struct {
	Runs []Span `yaml:"runs"`
}

// ReadDocument reads a document in YAML format. Runs with empty text are
// dropped.
func ReadDocument(r io.Reader) (*Document, error) {
	var df docFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&df); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	doc := &Document{Name: df.Name, LineSep: df.LineSep}
	for i, pf := range df.Paragraphs {
		p := NewParagraph()
		for j, s := range pf.Runs {
			if s.Style.Size < 0 {
				return nil, DocumentError{Para: i, Run: j, err: fmt.Errorf("negative font size %g", s.Style.Size)}
			}
			if s.Text != "" {
				p.Append(s.Text, s.Style)
			}
		}
		doc.AddParagraph(p)
	}
	return doc, nil
}

// LoadDocument reads a document from file. If the document has no name, it
// is named after the file.
func LoadDocument(file string) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", file, err)
	}
	if doc.Name == "" {
		base := filepath.Base(file)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

// Write writes the document in YAML format.
func (doc *Document) Write(w io.Writer) error {
	df := docFile{
		Name:       doc.Name,
		LineSep:    doc.LineSep,
		Paragraphs: make([]paraFile, 0, doc.NumParagraphs()),
	}
	doc.EachParagraph(func(_ int, p *Paragraph) error {
		df.Paragraphs = append(df.Paragraphs, paraFile{Runs: p.Spans()})
		return nil
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&df); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the document to file. The file is only replaced when the
// complete document was written.
func (doc *Document) Save(file string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = doc.Write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// OutputFile returns the file name a colored book is saved to, e.g.
// "books/moby_vibrant_vowels.yaml" for dir "books", book "moby" and suffix
// "_vibrant_vowels".
func OutputFile(dir, book, suffix string) string {
	return filepath.Join(dir, book+suffix+DocExt)
}

// InputFile returns the file name of a book in dir.
func InputFile(dir, book string) string {
	return filepath.Join(dir, book+DocExt)
}

// DocExt is the file extension of documents.
const DocExt = ".yaml"
