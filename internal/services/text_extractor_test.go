package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestExtractText_Txt(t *testing.T) {
	path := writeTemp(t, "resume.TXT", []byte("Skills:\nGo, SQL\n"))
	assert.Equal(t, "Skills:\nGo, SQL\n", NewTextExtractor(zap.NewNop()).ExtractText(path))
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	path := writeTemp(t, "resume.txt", []byte{'g', 'o', 0xff, '!'})
	text := NewTextExtractor(zap.NewNop()).ExtractText(path)
	assert.Equal(t, "go\uFFFD!", text)
}

// buildPDF writes a minimal uncompressed PDF with one Helvetica text line
// per page.
func buildPDF(pages ...string) []byte {
	var objects []string
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText_PDF(t *testing.T) {
	path := writeTemp(t, "resume.pdf", buildPDF("Python Docker AWS"))
	log := zap.NewNop()

	text := NewTextExtractor(log).ExtractText(path)
	assert.Contains(t, text, "Python Docker AWS")
	assert.ElementsMatch(t, []string{"python", "docker", "aws"}, NewSkillExtractor(DefaultSkillRules(), log).ExtractSkills(text))
}

func TestExtractText_PDFPageOrder(t *testing.T) {
	path := writeTemp(t, "resume.pdf", buildPDF("FirstPage Kotlin", "SecondPage Rust"))

	text := NewTextExtractor(zap.NewNop()).ExtractText(path)
	first := strings.Index(text, "FirstPage Kotlin")
	second := strings.Index(text, "SecondPage Rust")
	require.GreaterOrEqual(t, first, 0, text)
	require.GreaterOrEqual(t, second, 0, text)
	assert.Less(t, first, second)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	path := writeTemp(t, "resume.pdf", []byte("%PDF-1.4 this is not really a pdf"))
	assert.Empty(t, NewTextExtractor(zap.NewNop()).ExtractText(path))
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "resume.docx", []byte("Skills: Go"))
	assert.Empty(t, NewTextExtractor(zap.NewNop()).ExtractText(path))
}

func TestExtractText_MissingFile(t *testing.T) {
	ex := NewTextExtractor(zap.NewNop())
	missing := filepath.Join(t.TempDir(), "nope")
	assert.Empty(t, ex.ExtractText(missing+".pdf"))
	assert.Empty(t, ex.ExtractText(missing+".txt"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Skills:\nGo, SQL", CleanText("  \n Skills:  \n\n\t Go, SQL \n\n"))
	assert.Empty(t, CleanText(" \n \n"))
}
