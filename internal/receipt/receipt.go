// Package receipt renders deposit receipts as QR code PNG files.
package receipt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	qrcode "github.com/skip2/go-qrcode"

	"savingsTracker/internal/fsutil"
)

// DefaultDir is where receipts land unless configured otherwise.
const DefaultDir = "images"

const defaultSize = 256

// Summary is the text encoded in a receipt, e.g. "alice - Rp50,000 - Cash".
func Summary(username string, amount int64, note string) string {
	return fmt.Sprintf("%s - Rp%s - %s", username, humanize.Comma(amount), note)
}

var fileNameReplacer = strings.NewReplacer(":", "_", " ", "_", "/", "_", `\`, "_")

// FileName derives the PNG name for summary. Path separators are replaced as
// well so a summary can never point outside the receipt directory.
func FileName(summary string) string {
	return "qr_" + fileNameReplacer.Replace(summary) + ".png"
}

// Generator writes receipts into a directory.
type Generator struct {
	dir  string
	size int
}

// NewGenerator returns a generator writing into dir (DefaultDir when empty).
func NewGenerator(dir string) *Generator {
	if dir == "" {
		dir = DefaultDir
	}
	return &Generator{dir: dir, size: defaultSize}
}

// Dir returns the output directory.
func (g *Generator) Dir() string { return g.dir }

// Generate encodes summary as a QR PNG and returns the written path.
// The directory is created on demand.
func (g *Generator) Generate(summary string) (string, error) {
	png, err := qrcode.Encode(summary, qrcode.Medium, g.size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	path := filepath.Join(g.dir, FileName(summary))
	if err := fsutil.WriteFileAtomic(path, png, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
