package present

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
)

// Font is a TrueType face registered with the plot font cache. The bundled
// Liberation fonts have no Hangul glyphs, so Korean labels need one.
type Font struct {
	typeface font.Typeface
}

// LoadFont reads and registers the font at path. An empty path returns a nil
// Font, which keeps the plot defaults.
func LoadFont(path string) (*Font, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read font file", goerr.V("path", path))
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseFont(name, data)
}

// ParseFont registers a font from raw TTF/OTF bytes under name.
func ParseFont(name string, data []byte) (*Font, error) {
	face, err := opentype.Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse font", goerr.V("name", name))
	}

	tf := font.Typeface("vibriodash-" + name)
	font.DefaultCache.Add(font.Collection{
		{Font: font.Font{Typeface: tf}, Face: face},
	})
	return &Font{typeface: tf}, nil
}

// Typeface returns the registered typeface name.
func (f *Font) Typeface() string {
	if f == nil {
		return ""
	}
	return string(f.typeface)
}

func (f *Font) apply(p *plot.Plot) {
	if f == nil {
		return
	}
	for _, st := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
		&p.Legend.TextStyle,
	} {
		st.Font = font.Font{Typeface: f.typeface, Size: st.Font.Size}
	}
}
