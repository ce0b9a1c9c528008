package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedBlockComment Code = 1001

	// Парсерные
	SynInfo                  Code = 2000
	SynUnterminatedBlock     Code = 2001
	SynMalformedSignature    Code = 2002
	SynUnknownOperator       Code = 2003
	SynUnresolvedResult      Code = 2004
	SynUnsupportedExpression Code = 2005

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проектные
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnterminatedBlockComment: "Unterminated block comment",
	SynInfo:                     "Syntax information",
	SynUnterminatedBlock:        "Unterminated block",
	SynMalformedSignature:       "Malformed signature",
	SynUnknownOperator:          "Unknown operator",
	SynUnresolvedResult:         "Unresolved result reference",
	SynUnsupportedExpression:    "Unsupported expression shape, call omitted",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Program cache error",
	ProjInfo:                    "Project information",
	ProjManifestInvalid:         "Invalid project manifest",
}

// ID returns the stable textual identifier, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	default:
		return fmt.Sprintf("E%04d", ic)
	}
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
