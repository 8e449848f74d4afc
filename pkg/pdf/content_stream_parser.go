package pdf

import (
	"bytes"
	"math"
	"strconv"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
)

// ContentStreamParser interprets the path-construction and painting
// operators of a decoded page content stream and collects the stroked and
// filled geometry as Line, Rect and Curve objects. Text operators are
// ignored; characters come from the text-layer readers.
type ContentStreamParser struct {
	originX     float64 // MediaBox left edge, PDF user space
	originTop   float64 // MediaBox top edge, PDF user space
	objects     Objects
	state       graphicsState
	stateStack  []graphicsState
	currentPath []pathElement
	current     Point
	start       Point
	xobjects    int // "Do" invocations, not descended into
}

type graphicsState struct {
	CTM         Matrix
	LineWidth   float64
	StrokeColor Color
	FillColor   Color
}

type pathOp uint8

const (
	opMove pathOp = iota
	opLine
	opCurve
	opClose
)

type pathElement struct {
	op     pathOp
	points []Point // already in device space
}

// Matrix represents a 2D transformation matrix
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns the identity transform
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// Multiply returns m × other
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		E: m.E*other.A + m.F*other.C + other.E,
		F: m.E*other.B + m.F*other.D + other.F,
	}
}

// Transform applies the matrix to a point
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// NewContentStreamParser creates a parser for a page whose MediaBox has its
// left edge at x0 and its top edge at y1 in PDF user space. Output
// coordinates are flipped to a top-left origin.
func NewContentStreamParser(x0, y1 float64) *ContentStreamParser {
	return &ContentStreamParser{
		originX:   x0,
		originTop: y1,
		state: graphicsState{
			CTM:       IdentityMatrix(),
			LineWidth: 1.0,
		},
	}
}

// Parse parses a content stream and returns extracted objects
func (p *ContentStreamParser) Parse(content []byte) Objects {
	lex := &contentLexer{data: content}
	var operands []string

	for {
		tok, isOp, ok := lex.next()
		if !ok {
			break
		}
		if !isOp {
			operands = append(operands, tok)
			continue
		}
		if tok == "BI" {
			lex.skipInlineImage()
		} else {
			p.processOperator(tok, operands)
		}
		operands = operands[:0]
	}

	if p.xobjects > 0 {
		logging.Logger().Debug("form XObjects not inspected for rules", "count", p.xobjects)
	}
	return p.objects
}

// processOperator processes a graphics operator with its operands.
// XObjects painted with "Do" are counted but their content is not parsed.
func (p *ContentStreamParser) processOperator(op string, operands []string) {
	switch op {
	// Graphics state
	case "q":
		p.stateStack = append(p.stateStack, p.state)
	case "Q":
		if n := len(p.stateStack); n > 0 {
			p.state = p.stateStack[n-1]
			p.stateStack = p.stateStack[:n-1]
		}
	case "cm":
		if f, ok := floats(operands, 6); ok {
			m := Matrix{A: f[0], B: f[1], C: f[2], D: f[3], E: f[4], F: f[5]}
			p.state.CTM = m.Multiply(p.state.CTM)
		}
	case "w":
		if f, ok := floats(operands, 1); ok {
			p.state.LineWidth = f[0]
		}

	// Path construction
	case "m":
		if f, ok := floats(operands, 2); ok {
			pt := p.device(f[0], f[1])
			p.currentPath = append(p.currentPath, pathElement{op: opMove, points: []Point{pt}})
			p.current, p.start = pt, pt
		}
	case "l":
		if f, ok := floats(operands, 2); ok {
			pt := p.device(f[0], f[1])
			p.currentPath = append(p.currentPath, pathElement{op: opLine, points: []Point{p.current, pt}})
			p.current = pt
		}
	case "c":
		if f, ok := floats(operands, 6); ok {
			p.curve(p.device(f[0], f[1]), p.device(f[2], f[3]), p.device(f[4], f[5]))
		}
	case "v":
		if f, ok := floats(operands, 4); ok {
			p.curve(p.current, p.device(f[0], f[1]), p.device(f[2], f[3]))
		}
	case "y":
		if f, ok := floats(operands, 4); ok {
			end := p.device(f[2], f[3])
			p.curve(p.device(f[0], f[1]), end, end)
		}
	case "h":
		p.closePath()
	case "re":
		if f, ok := floats(operands, 4); ok {
			p.rectangle(f[0], f[1], f[2], f[3])
		}

	// Path painting
	case "S":
		p.stroke()
	case "s":
		p.closePath()
		p.stroke()
	case "f", "F", "f*", "B", "B*":
		p.fill()
	case "b", "b*":
		p.closePath()
		p.fill()
	case "n":
		p.currentPath = nil

	// Colors used to tell stroked from filled rules apart
	case "RG":
		if f, ok := floats(operands, 3); ok {
			p.state.StrokeColor = rgb(f[0], f[1], f[2])
		}
	case "rg":
		if f, ok := floats(operands, 3); ok {
			p.state.FillColor = rgb(f[0], f[1], f[2])
		}
	case "G":
		if f, ok := floats(operands, 1); ok {
			p.state.StrokeColor = rgb(f[0], f[0], f[0])
		}
	case "g":
		if f, ok := floats(operands, 1); ok {
			p.state.FillColor = rgb(f[0], f[0], f[0])
		}

	case "Do":
		p.xobjects++
	}
}

func (p *ContentStreamParser) curve(c1, c2, end Point) {
	p.currentPath = append(p.currentPath, pathElement{op: opCurve, points: []Point{p.current, c1, c2, end}})
	p.current = end
}

func (p *ContentStreamParser) closePath() {
	if p.current != p.start {
		p.currentPath = append(p.currentPath, pathElement{op: opLine, points: []Point{p.current, p.start}})
	}
	p.currentPath = append(p.currentPath, pathElement{op: opClose})
	p.current = p.start
}

func (p *ContentStreamParser) rectangle(x, y, w, h float64) {
	p0 := p.device(x, y)
	p1 := p.device(x+w, y)
	p2 := p.device(x+w, y+h)
	p3 := p.device(x, y+h)
	p.currentPath = append(p.currentPath,
		pathElement{op: opMove, points: []Point{p0}},
		pathElement{op: opLine, points: []Point{p0, p1}},
		pathElement{op: opLine, points: []Point{p1, p2}},
		pathElement{op: opLine, points: []Point{p2, p3}},
		pathElement{op: opLine, points: []Point{p3, p0}},
		pathElement{op: opClose},
	)
	p.current, p.start = p0, p0
}

func (p *ContentStreamParser) stroke() {
	p.emit(false)
	p.currentPath = nil
}

func (p *ContentStreamParser) fill() {
	p.emit(true)
	p.currentPath = nil
}

// emit converts the current path into objects. Axis-aligned rectangles
// become RectObjects; other straight segments become LineObjects and curves
// become CurveObjects.
func (p *ContentStreamParser) emit(filled bool) {
	if len(p.currentPath) == 0 {
		return
	}

	for _, sub := range splitSubpaths(p.currentPath) {
		if box, ok := rectangleBounds(sub); ok {
			rect := RectObject{
				X0: box.X0, Y0: box.Top, X1: box.X1, Y1: box.Bottom,
				Width:       p.state.LineWidth,
				StrokeColor: p.state.StrokeColor,
				FillColor:   p.state.FillColor,
				NonStroking: filled,
			}
			p.objects.Rects = append(p.objects.Rects, rect)
			continue
		}

		for _, el := range sub {
			switch el.op {
			case opLine:
				p.objects.Lines = append(p.objects.Lines, LineObject{
					X0: el.points[0].X, Y0: el.points[0].Y,
					X1: el.points[1].X, Y1: el.points[1].Y,
					Width:       p.state.LineWidth,
					StrokeColor: p.state.StrokeColor,
				})
			case opCurve:
				p.objects.Curves = append(p.objects.Curves, CurveObject{
					Points:      append([]Point(nil), el.points...),
					StrokeColor: p.state.StrokeColor,
					Width:       p.state.LineWidth,
				})
			}
		}
	}
}

// device maps user-space coordinates through the CTM and flips them into
// top-left-origin page space.
func (p *ContentStreamParser) device(x, y float64) Point {
	dx, dy := p.state.CTM.Transform(x, y)
	return Point{X: dx - p.originX, Y: p.originTop - dy}
}

func splitSubpaths(path []pathElement) [][]pathElement {
	var subs [][]pathElement
	var cur []pathElement
	for _, el := range path {
		if el.op == opMove && len(cur) > 0 {
			subs = append(subs, cur)
			cur = nil
		}
		cur = append(cur, el)
	}
	if len(cur) > 0 {
		subs = append(subs, cur)
	}
	return subs
}

// rectangleBounds reports whether a subpath is a closed axis-aligned
// four-sided polygon and returns its box.
func rectangleBounds(sub []pathElement) (BoundingBox, bool) {
	var pts []Point
	closed := false
	for _, el := range sub {
		switch el.op {
		case opLine:
			if len(pts) == 0 {
				pts = append(pts, el.points[0])
			}
			pts = append(pts, el.points[1])
		case opCurve:
			return BoundingBox{}, false
		case opClose:
			closed = true
		}
	}
	if len(pts) != 5 || pts[0] != pts[4] || !closed {
		return BoundingBox{}, false
	}

	box := BoundingBox{X0: pts[0].X, Top: pts[0].Y, X1: pts[0].X, Bottom: pts[0].Y}
	for i := 1; i < 5; i++ {
		a, b := pts[i-1], pts[i]
		if a.X != b.X && a.Y != b.Y {
			return BoundingBox{}, false
		}
		box.X0 = min(box.X0, b.X)
		box.Top = min(box.Top, b.Y)
		box.X1 = max(box.X1, b.X)
		box.Bottom = max(box.Bottom, b.Y)
	}
	return box, true
}

func floats(operands []string, n int) ([]float64, bool) {
	if len(operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, s := range operands[len(operands)-n:] {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func rgb(r, g, b float64) Color {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return Color{R: clamp(r), G: clamp(g), B: clamp(b), A: 255}
}

// contentLexer splits a content stream into operand and operator tokens.
// Strings, arrays and dictionaries are returned as opaque operands.
type contentLexer struct {
	data []byte
	pos  int
}

func (l *contentLexer) next() (string, bool, bool) {
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		switch {
		case isWhitespace(b):
			l.pos++
		case b == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case b == '(':
			return l.readBalanced('(', ')'), false, true
		case b == '[':
			return l.readBalanced('[', ']'), false, true
		case b == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				return l.readDict(), false, true
			}
			return l.readBalanced('<', '>'), false, true
		case b == '/':
			start := l.pos
			l.pos++
			l.readRegular()
			return string(l.data[start:l.pos]), false, true
		default:
			start := l.pos
			l.readRegular()
			if l.pos == start {
				// Stray delimiter such as ')' or '>'.
				l.pos++
				continue
			}
			tok := string(l.data[start:l.pos])
			return tok, !isNumeric(tok), true
		}
	}
	return "", false, false
}

func (l *contentLexer) readRegular() {
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
}

func (l *contentLexer) readBalanced(open, close byte) string {
	start := l.pos
	depth := 0
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if b == '\\' && open == '(' {
			l.pos += 2
			continue
		}
		l.pos++
		if b == open {
			depth++
		} else if b == close {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	return string(l.data[start:min(l.pos, len(l.data))])
}

func (l *contentLexer) readDict() string {
	start := l.pos
	depth := 0
	for l.pos+1 < len(l.data) {
		switch {
		case l.data[l.pos] == '<' && l.data[l.pos+1] == '<':
			depth++
			l.pos += 2
		case l.data[l.pos] == '>' && l.data[l.pos+1] == '>':
			depth--
			l.pos += 2
			if depth == 0 {
				return string(l.data[start:l.pos])
			}
		default:
			l.pos++
		}
	}
	l.pos = len(l.data)
	return string(l.data[start:])
}

// skipInlineImage advances past the binary payload of a BI ... ID ... EI block.
func (l *contentLexer) skipInlineImage() {
	if i := bytes.Index(l.data[l.pos:], []byte("ID")); i >= 0 {
		l.pos += i + 2
	}
	for l.pos < len(l.data) {
		i := bytes.Index(l.data[l.pos:], []byte("EI"))
		if i < 0 {
			l.pos = len(l.data)
			return
		}
		end := l.pos + i
		l.pos = end + 2
		if end > 0 && isWhitespace(l.data[end-1]) && (l.pos >= len(l.data) || isWhitespace(l.data[l.pos])) {
			return
		}
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

func isNumeric(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}
