package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_DocxStripsMarkup(t *testing.T) {
	doc := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Go Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>5 years of experience with golang and kubernetes</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := ExtractTextFromBytes(context.Background(), doc, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "Senior Go Engineer") {
		t.Fatalf("missing heading in %q", text)
	}
	if !strings.Contains(text, "5 years of experience") {
		t.Fatalf("missing body text in %q", text)
	}
	if strings.Contains(text, "<w:") {
		t.Fatalf("markup leaked into %q", text)
	}
}

func TestExtractTextFromBytes_ZipSniffedAsDocx(t *testing.T) {
	doc := buildDocx(t, `<w:document><w:body><w:p><w:r><w:t>hello</w:t></w:r></w:p></w:body></w:document>`)

	// Stores that sniff content report DOCX uploads as application/zip.
	text, err := ExtractTextFromBytes(context.Background(), doc, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if text != "hello" {
		t.Fatalf("got %q, want %q", text, "hello")
	}
}

func TestExtractTextFromBytes_PlainTextPassesThrough(t *testing.T) {
	body := "Jane Doe\nSkills: Go, Docker\n"

	text, err := ExtractTextFromBytes(context.Background(), []byte(body), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if text != body {
		t.Fatalf("got %q, want %q", text, body)
	}
}

func TestExtractTextFromBytes_ExtensionFallback(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("plain resume body"), "application/octet-stream", "resume.txt")
	if err != nil {
		t.Fatalf("extract with octet-stream mime: %v", err)
	}
	if text != "plain resume body" {
		t.Fatalf("got %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for plain zip, got: %v", err)
	}
}
