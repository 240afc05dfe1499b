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

func TestTextPlainTrimsWhitespace(t *testing.T) {
	got, err := Text(context.Background(), []byte("  hello candidate  \n"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "hello candidate" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextRejectsInvalidUTF8(t *testing.T) {
	if _, err := Text(context.Background(), []byte{0xff, 0xfe, 0x00}, "text/plain", "cv.txt"); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestTextDocxStripsMarkup(t *testing.T) {
	docXML := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body>` +
		`<w:p><w:r><w:t>Five years of Go.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Speaks Vietnamese and English.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDocx(t, docXML)

	got, err := Text(context.Background(), data,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "cv.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "Five years of Go.") || !strings.Contains(got, "Speaks Vietnamese and English.") {
		t.Fatalf("unexpected docx text: %q", got)
	}
}

func TestTextDocxFromZipMime(t *testing.T) {
	data := buildDocx(t, `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>hi</w:t></w:r></w:p></w:body></w:document>`)
	if _, err := Text(context.Background(), data, "application/zip", "cv.docx"); err != nil {
		t.Fatalf("expected docx extraction from zip mime, got %v", err)
	}
}

func TestTextUnsupportedMime(t *testing.T) {
	_, err := Text(context.Background(), []byte("GIF89a"), "image/gif", "cv.gif")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextExtensionFallback(t *testing.T) {
	got, err := Text(context.Background(), []byte("plain body"), "application/octet-stream", "cv.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "plain body" {
		t.Fatalf("unexpected text: %q", got)
	}
}
