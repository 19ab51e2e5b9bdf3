package tesseract

import "sort"

// knownLanguages are the traineddata names published for tesseract 4 and 5.
// https://tesseract-ocr.github.io/tessdoc/Data-Files-in-different-versions.html
var knownLanguages = toSet(
	"afr", "amh", "ara", "asm", "aze", "aze_cyrl", "bel", "ben", "bod", "bos", "bre", "bul",
	"cat", "ceb", "ces", "chi_sim", "chi_sim_vert", "chi_tra", "chi_tra_vert", "chr", "cos",
	"cym", "dan", "dan_frak", "deu", "deu_frak", "dzo", "ell", "eng", "enm", "epo", "equ",
	"est", "eus", "fao", "fas", "fil", "fin", "fra", "frk", "frm", "fry", "gla", "gle", "glg",
	"grc", "guj", "hat", "heb", "hin", "hrv", "hun", "hye", "iku", "ind", "isl", "ita",
	"ita_old", "jav", "jpn", "jpn_vert", "kan", "kat", "kat_old", "kaz", "khm", "kir", "kmr",
	"kor", "kor_vert", "kur", "lao", "lat", "lav", "lit", "ltz", "mal", "mar", "mkd", "mlt",
	"mon", "mri", "msa", "mya", "nep", "nld", "nor", "oci", "osd", "pan", "pol", "por", "pus",
	"que", "ron", "rus", "san", "sin", "slk", "slk_frak", "slv", "snd", "spa", "spa_old",
	"sqi", "srp", "srp_latn", "sun", "swa", "swe", "syr", "tam", "tat", "tel", "tgk", "tgl",
	"tha", "tir", "ton", "tur", "uig", "ukr", "urd", "uzb", "uzb_cyrl", "vie", "yid", "yor",
)

// PageSegModes describes every --psm value tesseract accepts.
var PageSegModes = map[int]string{
	0:  "Orientation and script detection (OSD) only.",
	1:  "Automatic page segmentation with OSD.",
	2:  "Automatic page segmentation, but no OSD, or OCR. (not implemented)",
	3:  "Fully automatic page segmentation, but no OSD. (Default)",
	4:  "Assume a single column of text of variable sizes.",
	5:  "Assume a single uniform block of vertically aligned text.",
	6:  "Assume a single uniform block of text.",
	7:  "Treat the image as a single text line.",
	8:  "Treat the image as a single word.",
	9:  "Treat the image as a single word in a circle.",
	10: "Treat the image as a single character.",
	11: "Sparse text. Find as much text as possible in no particular order.",
	12: "Sparse text with OSD.",
	13: "Raw line. Treat the image as a single text line, bypassing hacks that are Tesseract-specific.",
}

// EngineModes describes every --oem value tesseract accepts.
var EngineModes = map[int]string{
	0: "Legacy engine only.",
	1: "Neural nets LSTM engine only.",
	2: "Legacy + LSTM engines.",
	3: "Default, based on what is available.",
}

// KnownLanguages returns the sorted language codes accepted by ValidateLanguage.
func KnownLanguages() []string {
	langs := make([]string, 0, len(knownLanguages))
	for l := range knownLanguages {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// IsKnownLanguage reports whether code is a single known traineddata name.
func IsKnownLanguage(code string) bool {
	return knownLanguages[code]
}

func toSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
