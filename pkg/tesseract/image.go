package tesseract

import "fmt"

// Image is the input of every recognition call: either a Path to an image on disk or
// the encoded Bytes of an image held in memory. No other implementations exist.
type Image interface {
	isImage()
}

// Path is an image file on disk. It is handed to tesseract as the input argument.
type Path string

// Bytes is an encoded image (PNG, JPEG, TIFF, ...) streamed to tesseract over stdin.
type Bytes []byte

func (Path) isImage()  {}
func (Bytes) isImage() {}

// imageSource resolves an Image into tesseract's input argument and the payload to write
// to its stdin. Paths must exist; a nil Image or nil Bytes is rejected with
// ErrUnsupportedInput before anything is spawned.
func imageSource(img Image) (input string, stdin []byte, err error) {
	switch v := img.(type) {
	case Path:
		if err := ValidateFileExists(string(v)); err != nil {
			return "", nil, err
		}
		return string(v), nil, nil
	case Bytes:
		if v == nil {
			return "", nil, fmt.Errorf("%w: nil image bytes", ErrUnsupportedInput)
		}
		return StdinSentinel, []byte(v), nil
	case nil:
		return "", nil, fmt.Errorf("%w: nil image", ErrUnsupportedInput)
	default:
		return "", nil, fmt.Errorf("%w: %T, use tesseract.Path or tesseract.Bytes", ErrUnsupportedInput, img)
	}
}
