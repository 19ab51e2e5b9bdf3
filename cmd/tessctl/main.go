// tessctl is a command-line front end for the tesseract OCR engine.
//
// It runs tesseract through the tessexec client, so every command gets option
// validation, a deadline on the tesseract process and structured results.
//
// Usage:
//
//	tessctl <command> [flags] IMAGE...
//
// Recognition commands (IMAGE may be "-" for stdin):
//
//	text        Plain text
//	hocr        hOCR document; several images are merged into one document
//	alto        ALTO XML
//	tsv         Raw TSV table
//	pdf         Searchable PDF (requires --out)
//	boxes       Glyph boxes
//	data        Parsed TSV rows
//	osd         Orientation and script detection
//	confidence  Script confidence
//	deskew      Skew angle
//	run         Several output formats from one tesseract run
//
// Other commands:
//
//	langs       Installed languages
//	version     tesseract and tessctl versions
//	params      tesseract control parameters
//	overlay     Searchable PDF from page images or an existing PDF plus hOCR
//	watch       OCR every image dropped into a directory
//
// Configuration:
//
// Flags override TESSEXEC_* environment variables (a .env file in the working
// directory is loaded first), which override the YAML config file:
//
//	binary: /usr/local/bin/tesseract
//	timeout: 2m
//	lang: eng+deu
//	psm: 6
//	var:
//	  - preserve_interword_spaces=1
//
// Examples:
//
//	tessctl text scan.png
//	tessctl data -o json --lang deu page1.png page2.png
//	tessctl run --formats txt,pdf,hocr --out-dir out/ scan.png
//	tessctl overlay --out book.pdf page-*.png
//	tessctl watch --out-dir texts/ inbox/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
