package poster

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceSet holds one face per text role on the poster.
type faceSet struct {
	title      font.Face
	subtitle   font.Face
	body       font.Face
	chartLabel font.Face
	chartValue font.Face
	quote      font.Face
	quoteMark  font.Face
}

// fontCandidates are tried in order before the embedded fallback.
var fontCandidates = []string{
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:\\Windows\\Fonts\\msyh.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// loadFaces resolves the poster fonts. It never fails: a platform font
// is tried first, then the embedded Go Regular, and as a last resort
// every role degrades to the built-in bitmap face.
func loadFaces() faceSet {
	f := loadFont()
	if f == nil {
		return bitmapFaces()
	}
	mk := func(size float64) font.Face {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return basicfont.Face7x13
		}
		return face
	}
	return faceSet{
		title:      mk(70),
		subtitle:   mk(32),
		body:       mk(28),
		chartLabel: mk(36),
		chartValue: mk(50),
		quote:      mk(30),
		quoteMark:  mk(80),
	}
}

func loadFont() *opentype.Font {
	for _, path := range fontCandidates {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f, err := opentype.Parse(b); err == nil {
			return f
		}
		if c, err := opentype.ParseCollection(b); err == nil {
			if f, err := c.Font(0); err == nil {
				return f
			}
		}
	}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		return f
	}
	return nil
}

func bitmapFaces() faceSet {
	f := basicfont.Face7x13
	return faceSet{
		title:      f,
		subtitle:   f,
		body:       f,
		chartLabel: f,
		chartValue: f,
		quote:      f,
		quoteMark:  f,
	}
}
