package vibrant

import (
	"bufio"
	"bytes"
	"io"
)

// Prepare creates documents from plain text, one paragraph per line.
type Prepare struct {
	Name string
	// Style of the single run each paragraph is made of.
	Style Style
}

// Text reads subj and returns a document with one paragraph per line. Line
// ends may be LF or CRLF; the first one found becomes the document's
// LineSep. Empty lines give empty paragraphs.
func (p Prepare) Text(subj io.Reader) (*Document, error) {
	doc := NewDocument(p.Name)
	var sep lineSepScanner
	scn := bufio.NewScanner(subj)
	scn.Buffer(nil, 1<<20)
	scn.Split(sep.ScanLines)
	for scn.Scan() {
		if doc.LineSep == "" && bytes.HasSuffix(sep, []byte{'\n'}) {
			doc.LineSep = string(sep)
		}
		para := NewParagraph()
		if line := scn.Text(); line != "" {
			para.Append(line, p.Style.Clone())
		}
		doc.AddParagraph(para)
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

type lineSepScanner []byte

func (lsc *lineSepScanner) ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// modificated version of bufio.Scan
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		res, cr := dropCR(data[0:i])
		*lsc = data[i-cr : i+1]
		return i + 1, res, nil
	}
	if atEOF {
		res, cr := dropCR(data)
		*lsc = data[len(data)-cr:]
		return len(data), res, nil
	}
	return 0, nil, nil
}

func dropCR(data []byte) ([]byte, int) {
	// modificated version of bufio.dropCR
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1], 1
	}
	return data, 0
}
