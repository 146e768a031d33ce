package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type variant struct {
	family       string
	bold, italic bool
}

// FaceMetrics implements [Metrics] using golang.org/x/image faces.
// It is safe for concurrent use.
type FaceMetrics struct {
	mu       sync.Mutex
	faces    map[Font]font.Face
	registry map[variant]*opentype.Font
	fixed    font.Face // if not nil, used for every font
}

// NewFaceMetrics returns metrics with the Go fonts registered,
// under the families "Go" and "Go Mono".
func NewFaceMetrics() *FaceMetrics {
	fm := &FaceMetrics{
		faces:    make(map[Font]font.Face),
		registry: make(map[variant]*opentype.Font),
	}
	for _, builtin := range [...]struct {
		family       string
		bold, italic bool
		data         []byte
	}{
		{DefaultFamily, false, false, goregular.TTF},
		{DefaultFamily, true, false, gobold.TTF},
		{DefaultFamily, false, true, goitalic.TTF},
		{DefaultFamily, true, true, gobolditalic.TTF},
		{"Go Mono", false, false, gomono.TTF},
		{"Go Mono", true, false, gomonobold.TTF},
	} {
		// the Go fonts are valid
		_ = fm.Register(builtin.family, builtin.bold, builtin.italic, builtin.data)
	}
	return fm
}

// NewFixedMetrics returns metrics using `face` for every font,
// whatever its family or size. It is mostly useful for tests,
// with basicfont.Face7x13.
func NewFixedMetrics(face font.Face) *FaceMetrics {
	return &FaceMetrics{fixed: face, registry: make(map[variant]*opentype.Font)}
}

// Register parses a TrueType or OpenType font file and makes it
// available for the given family and style.
func (fm *FaceMetrics) Register(family string, bold, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font %s: %w", family, err)
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.registry[variant{family, bold, italic}] = f
	// drop the cached faces which may now resolve differently
	for ft := range fm.faces {
		if ft.Family == family {
			delete(fm.faces, ft)
		}
	}
	return nil
}

// Face returns the face used for `ft`, creating it if needed.
// Faces are shared: they must not be used concurrently with
// the other methods of fm.
func (fm *FaceMetrics) Face(ft Font) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.face(ft)
}

func (fm *FaceMetrics) face(ft Font) (font.Face, error) {
	if fm.fixed != nil {
		return fm.fixed, nil
	}
	if face, ok := fm.faces[ft]; ok {
		return face, nil
	}
	otf := fm.registry[variant{ft.Family, ft.Bold, ft.Italic}]
	if otf == nil { // use the regular style of the family
		otf = fm.registry[variant{family: ft.Family}]
	}
	if otf == nil {
		return nil, fmt.Errorf("unknown font family %q", ft.Family)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    ft.Size,
		DPI:     72, // 1 point per pixel
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", ft, err)
	}
	fm.faces[ft] = face
	return face, nil
}

func toFl(v fixed.Int26_6) Fl { return Fl(v) / 64 }

func (fm *FaceMetrics) Advance(s string, ft Font) (Fl, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	face, err := fm.face(ft)
	if err != nil {
		return 0, err
	}
	return toFl(font.MeasureString(face, s)), nil
}

func (fm *FaceMetrics) LineBreaks(s string, ft Font, maxWidth Fl) ([]int, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	face, err := fm.face(ft)
	if err != nil {
		return nil, err
	}
	return WrapLines(s, maxWidth, func(line string) (Fl, error) {
		return toFl(font.MeasureString(face, line)), nil
	})
}

func (fm *FaceMetrics) Extents(ft Font) (Extents, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	face, err := fm.face(ft)
	if err != nil {
		return Extents{}, err
	}
	m := face.Metrics()
	return Extents{Ascent: toFl(m.Ascent), Descent: toFl(m.Descent), LineHeight: toFl(m.Height)}, nil
}
