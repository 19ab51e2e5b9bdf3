package tesseract

// Box is one recognized glyph from tesseract's makebox output.
// The coordinates are tesseract's box-file columns: left, bottom, right and top edges
// measured from the bottom-left corner of the image.
type Box struct {
	Character string `json:"character" yaml:"character"`
	X         int    `json:"x" yaml:"x"`
	Y         int    `json:"y" yaml:"y"`
	W         int    `json:"w" yaml:"w"`
	H         int    `json:"h" yaml:"h"`
	Page      int    `json:"page" yaml:"page"` // 0-based page, when tesseract printed one
}

func (b Box) String() string { return b.Character }

// Data is one row of tesseract's TSV output. Rows come in reading order; Level is
// 1 page, 2 block, 3 paragraph, 4 line, 5 word.
type Data struct {
	Level    int     `json:"level" yaml:"level"`
	PageNum  int     `json:"page_num" yaml:"page_num"`
	BlockNum int     `json:"block_num" yaml:"block_num"`
	ParNum   int     `json:"par_num" yaml:"par_num"`
	LineNum  int     `json:"line_num" yaml:"line_num"`
	WordNum  int     `json:"word_num" yaml:"word_num"`
	Left     int     `json:"left" yaml:"left"`
	Top      int     `json:"top" yaml:"top"`
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	Conf     float64 `json:"conf" yaml:"conf"` // -1 for rows above word level
	Text     string  `json:"text" yaml:"text"`
}

func (d Data) String() string { return d.Text }

// IsWord reports whether the row describes a recognized word.
func (d Data) IsWord() bool { return d.Conf >= 0 }

// OSD is tesseract's orientation and script detection result.
type OSD struct {
	PageNumber            int     `json:"page_number" yaml:"page_number"`
	OrientationDegrees    float64 `json:"orientation_degrees" yaml:"orientation_degrees"`
	Rotate                float64 `json:"rotate" yaml:"rotate"`
	OrientationConfidence float64 `json:"orientation_confidence" yaml:"orientation_confidence"`
	Script                string  `json:"script" yaml:"script"`
	ScriptConfidence      float64 `json:"script_confidence" yaml:"script_confidence"`
}

func (o OSD) String() string { return o.Script }

// Parameter is one tesseract control parameter as listed by --print-parameters.
// Value is "-" for parameters printed without a value.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}
