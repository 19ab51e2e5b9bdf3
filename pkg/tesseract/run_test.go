package tesseract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writesOutputs is a fake tesseract body that writes one file per trailing format token
// next to the output base in $2.
const writesOutputs = `cat > /dev/null
base="$2"
for a in "$@"; do
  case "$a" in
    txt) printf 'plain text' > "$base.txt" ;;
    hocr) printf '<html></html>' > "$base.hocr" ;;
    pdf) printf '%%PDF-1.5' > "$base.pdf" ;;
    tsv) printf 'level\tpage_num\n' > "$base.tsv" ;;
    alto) printf '<alto/>' > "$base.xml" ;;
  esac
done`

func TestRunFunc(t *testing.T) {
	fake := newFakeBinary(t, writesOutputs)
	formats := []FileFormat{FormatText, FormatPDF, FormatALTO}

	var seen []string
	err := fake.client.RunFunc(context.Background(), Bytes("img"), "scan", formats, DefaultOptions(), func(files []string) error {
		seen = files
		if len(files) != len(formats) {
			t.Fatalf("got %d files, want %d", len(files), len(formats))
		}
		for i, f := range files {
			if filepath.Base(f) != "scan"+formats[i].Extension() {
				t.Errorf("file %d = %s", i, f)
			}
			if _, err := os.Stat(f); err != nil {
				t.Errorf("file %s missing inside callback: %v", f, err)
			}
		}
		data, err := os.ReadFile(files[0])
		if err != nil || string(data) != "plain text" {
			t.Errorf("txt content = %q, %v", data, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Dir(seen[0])); !os.IsNotExist(err) {
		t.Errorf("scratch directory survived the call: %v", err)
	}

	args := fake.args(t)
	if args[0] != StdinSentinel {
		t.Errorf("input = %q", args[0])
	}
	if tail := strings.Join(args[len(args)-3:], " "); tail != "txt pdf alto" {
		t.Errorf("trailing tokens = %q", tail)
	}
}

func TestRunFuncCleansUpOnCallbackError(t *testing.T) {
	fake := newFakeBinary(t, writesOutputs)
	boom := errors.New("boom")

	var dir string
	err := fake.client.RunFunc(context.Background(), Bytes("img"), "", []FileFormat{FormatTSV}, DefaultOptions(), func(files []string) error {
		dir = filepath.Dir(files[0])
		if filepath.Ext(files[0]) != ".tsv" {
			t.Errorf("file = %s", files[0])
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("scratch directory survived the callback error: %v", err)
	}
}

func TestRunLeavesNothingOnFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	fake := newFakeBinary(t, "cat > /dev/null\necho 'read error' >&2\nexit 1")

	res, err := fake.client.Run(context.Background(), Bytes("img"), "scan", []FileFormat{FormatText}, DefaultOptions())
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected ErrRuntime, got %v", err)
	}
	if res != nil {
		t.Error("no result expected on failure")
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "tessexec-") {
			t.Errorf("scratch directory %s left behind", e.Name())
		}
	}
}

func TestRunClose(t *testing.T) {
	fake := newFakeBinary(t, writesOutputs)

	res, err := fake.client.Run(context.Background(), Bytes("img"), "page", []FileFormat{FormatHOCR}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(res.Files[0]); err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatal(err)
	}
	if err := res.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := os.Stat(res.Dir); !os.IsNotExist(err) {
		t.Errorf("scratch directory survived Close: %v", err)
	}
}

func TestRunRejects(t *testing.T) {
	fake := newFakeBinary(t, writesOutputs)
	ctx := context.Background()

	tests := []struct {
		name    string
		img     Image
		outName string
		formats []FileFormat
		want    error
	}{
		{"path input", testImage(t), "x", []FileFormat{FormatText}, ErrUnsupportedInput},
		{"nil bytes", Bytes(nil), "x", []FileFormat{FormatText}, ErrUnsupportedInput},
		{"no formats", Bytes("img"), "x", nil, ErrInvalidFormat},
		{"osd", Bytes("img"), "x", []FileFormat{FormatText, FormatOSD}, ErrInvalidFormat},
		{"unknown format", Bytes("img"), "x", []FileFormat{FileFormat(9)}, ErrInvalidFormat},
		{"duplicate format", Bytes("img"), "x", []FileFormat{FormatText, FormatPDF, FormatText}, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fake.client.Run(ctx, tt.img, tt.outName, tt.formats, DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := fake.client.Run(ctx, Bytes("img"), "../escape", []FileFormat{FormatText}, DefaultOptions()); err == nil {
		t.Error("expected an error for a name with a directory component")
	}
	if fake.ran() {
		t.Error("tesseract must not run for rejected input")
	}
}
