package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteHTML renders the markdown report as a standalone HTML page.
// Color is ignored; ANSI codes have no meaning in HTML.
func WriteHTML(w io.Writer, r *Report, opts Options) error {
	opts.Color = false

	var md bytes.Buffer
	if err := WriteMarkdown(&md, r, opts); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := htmlRenderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	title := html.EscapeString(fmt.Sprintf("%s vs %s", r.ReferenceName, r.CandidateName))
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
