// Package tesseract drives the tesseract OCR command-line binary as a supervised subprocess.
//
// Every call builds an argument vector from typed Options, spawns exactly one tesseract
// process, streams the image to it (or hands it a path), waits for it under a deadline and
// decodes whatever tesseract printed into structured values. A call that runs out of time
// kills the process, reaps it and returns a *TimeoutError; partial output is never returned.
//
// Key Features:
//
// - Images by path (Path) or in memory (Bytes) through one Image type
// - Validation of page segmentation mode, engine mode, language tags and dictionary paths
// - Deterministic argument layout: input, output, path flags, --dpi/--psm/--oem, -l, -c, formats
// - Distinct errors for spawn failures, nonzero exits, timeouts and malformed output
// - Parsers for the TSV data table, makebox boxes, OSD blocks and --print-parameters output
// - One-shot multi-format runs into a call-scoped scratch directory
//
// Main Functions:
//
// - New: Creates a Client from a Config (binary, default timeout, encoding, logger)
// - ImageToString, ImageToHOCR, ImageToPDF, ImageToALTO, ImageToTSV: raw tesseract outputs
// - ImageToBoxes, ImageToData, ImageToOSD, ImageToHOCRDocument: parsed outputs
// - Confidence, Deskew: scalar metrics that default to 0 when tesseract reports none
// - Languages, Version, Parameters: introspection of the installed binary
// - Run, RunFunc: several output formats from a single tesseract execution
//
// A Client holds only read-only configuration and is safe for concurrent use.
package tesseract
