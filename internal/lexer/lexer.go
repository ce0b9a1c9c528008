package lexer

import (
	"ro/internal/source"
	"ro/internal/token"
)

// mode tells the scanner what to expect next.
type mode uint8

const (
	modeNormal      mode = iota
	modeOperator         // в буфере оператор, ждём второй символ
	modeLineComment      // пропускаем всё до '\n'
)

// Lexer is a single-pass scanner over one source file. The token buffer is
// always a contiguous byte range [start, end) of the file content.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	mode   mode
	start  uint32
	end    uint32
	out    token.List
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// TokenizeWithComments converts the file into tokens. Line comments are dropped,
// block-comment markers are kept as tokens. The function is total.
func TokenizeWithComments(file *source.File, opts Options) token.List {
	return New(file, opts).run()
}

// Tokenize converts the file into tokens and removes block comments.
func Tokenize(file *source.File, opts Options) token.List {
	lx := New(file, opts)
	tokens, open := filterBlockComments(lx.run())
	if open != nil {
		lx.warn(diagUnterminatedComment, open.Span, "block comment is never closed")
	}
	return tokens
}

// TokenizeString tokenizes src as a virtual file and removes block comments.
func TokenizeString(src string) token.List {
	fs := source.NewFileSet()
	return Tokenize(fs.Get(fs.AddVirtual("<string>", []byte(src))), Options{})
}

func (lx *Lexer) run() token.List {
	lx.out = make(token.List, 0, len(lx.file.Content)/3+1)
	for !lx.cursor.EOF() {
		at := lx.cursor.Off
		r := lx.cursor.Bump()

		switch {
		case lx.mode == modeLineComment:
			if r == '\n' {
				lx.mode = modeNormal
			}

		case token.IsWhitespaceRune(r):
			lx.flush()
			lx.mode = modeNormal

		case token.IsOperatorRune(r):
			if token.IsOperator(lx.pending() + string(r)) {
				lx.extend(at)
				if lx.pending() == "//" {
					// комментарий до конца строки, сам маркер не эмитим
					lx.start, lx.end = lx.cursor.Off, lx.cursor.Off
					lx.mode = modeLineComment
				} else {
					lx.mode = modeOperator
				}
			} else {
				lx.flush()
				lx.extend(at)
				lx.mode = modeOperator
			}

		case lx.mode == modeOperator:
			lx.flush()
			lx.extend(at)
			lx.mode = modeNormal

		default:
			lx.extend(at)
		}
	}
	lx.flush()
	return lx.out
}

func (lx *Lexer) pending() string {
	return string(lx.file.Content[lx.start:lx.end])
}

// extend grows the buffer by the rune that started at offset at.
func (lx *Lexer) extend(at uint32) {
	if lx.start == lx.end {
		lx.start = at
	}
	lx.end = lx.cursor.Off
}

func (lx *Lexer) flush() {
	if lx.start == lx.end {
		return
	}
	text := lx.pending()
	lx.out = append(lx.out, token.Token{
		Kind: token.Classify(text),
		Span: source.Span{File: lx.file.ID, Start: lx.start, End: lx.end},
		Text: text,
	})
	lx.start, lx.end = lx.cursor.Off, lx.cursor.Off
}
