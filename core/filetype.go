package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Family groups recognized file types by how they are extracted and where
// their vectors live. The family also selects the vector-store collection
// sub-namespace for the owner.
type Family int

const (
	FamilyText Family = iota + 1
	FamilyCode
	FamilyImage
	FamilyPDF
	FamilyWord
)

// Collection returns the content-category sub-namespace for the family.
// Vector-store namespaces are "{owner}/{collection}".
func (f Family) Collection() string {
	switch f {
	case FamilyImage, FamilyPDF, FamilyWord:
		return "image"
	default:
		return "text"
	}
}

func (f Family) String() string {
	switch f {
	case FamilyText:
		return "text"
	case FamilyCode:
		return "code"
	case FamilyImage:
		return "image"
	case FamilyPDF:
		return "pdf"
	case FamilyWord:
		return "word"
	default:
		return "unknown"
	}
}

// Language identifies the programming language of a source file, used to
// select language-aware chunking separators.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangRust       Language = "rust"
	LangRuby       Language = "ruby"
)

// FileType is a recognized, normalized file extension (no leading dot).
type FileType string

const (
	TypeTXT  FileType = "txt"
	TypeMD   FileType = "md"
	TypeGo   FileType = "go"
	TypePy   FileType = "py"
	TypeJS   FileType = "js"
	TypeTS   FileType = "ts"
	TypeJava FileType = "java"
	TypeC    FileType = "c"
	TypeCPP  FileType = "cpp"
	TypeRS   FileType = "rs"
	TypeRB   FileType = "rb"
	TypeJPEG FileType = "jpeg"
	TypeJPG  FileType = "jpg"
	TypePNG  FileType = "png"
	TypePDF  FileType = "pdf"
	TypeDOCX FileType = "docx"
)

// typeInfo is the closed registry of recognized extensions.
var typeInfo = map[FileType]struct {
	family Family
	lang   Language
}{
	TypeTXT:  {family: FamilyText},
	TypeMD:   {family: FamilyText},
	TypeGo:   {family: FamilyCode, lang: LangGo},
	TypePy:   {family: FamilyCode, lang: LangPython},
	TypeJS:   {family: FamilyCode, lang: LangJavaScript},
	TypeTS:   {family: FamilyCode, lang: LangTypeScript},
	TypeJava: {family: FamilyCode, lang: LangJava},
	TypeC:    {family: FamilyCode, lang: LangC},
	TypeCPP:  {family: FamilyCode, lang: LangCPP},
	TypeRS:   {family: FamilyCode, lang: LangRust},
	TypeRB:   {family: FamilyCode, lang: LangRuby},
	TypeJPEG: {family: FamilyImage},
	TypeJPG:  {family: FamilyImage},
	TypePNG:  {family: FamilyImage},
	TypePDF:  {family: FamilyPDF},
	TypeDOCX: {family: FamilyWord},
}

// ParseFileType normalizes an extension (with or without the leading dot)
// into a recognized FileType.
func ParseFileType(ext string) (FileType, error) {
	ft := FileType(strings.ToLower(strings.TrimPrefix(ext, ".")))
	if _, ok := typeInfo[ft]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
	return ft, nil
}

// FileTypeFromPath derives the file name (without extension) and the
// recognized type from a path.
func FileTypeFromPath(path string) (name string, ft FileType, err error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	ft, err = ParseFileType(ext)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSuffix(base, ext), ft, nil
}

// Family returns the extraction family of the type.
func (ft FileType) Family() Family {
	return typeInfo[ft].family
}

// CollectionNamespace returns the vector-store namespace for an owner's
// content of this type: "{owner}/{collection}".
func CollectionNamespace(owner string, ft FileType) string {
	return owner + "/" + ft.Family().Collection()
}

// Language returns the programming language for code types, and the empty
// Language for everything else.
func (ft FileType) Language() Language {
	return typeInfo[ft].lang
}
