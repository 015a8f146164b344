package core

import (
	"errors"
	"testing"
)

func TestParseFileType(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		want    FileType
		wantErr bool
	}{
		{name: "with dot", ext: ".txt", want: TypeTXT},
		{name: "without dot", ext: "pdf", want: TypePDF},
		{name: "upper case", ext: ".PNG", want: TypePNG},
		{name: "code", ext: ".go", want: TypeGo},
		{name: "unknown", ext: ".xlsx", wantErr: true},
		{name: "empty", ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileType(tt.ext)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFileType) {
					t.Errorf("ParseFileType(%q) error = %v, want ErrUnsupportedFileType", tt.ext, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFileType(%q) error = %v", tt.ext, err)
			}
			if got != tt.want {
				t.Errorf("ParseFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestFileTypeFromPath(t *testing.T) {
	name, ft, err := FileTypeFromPath("/data/uploads/report.pdf")
	if err != nil {
		t.Fatalf("FileTypeFromPath() error = %v", err)
	}
	if name != "report" || ft != TypePDF {
		t.Errorf("FileTypeFromPath() = (%q, %v)", name, ft)
	}

	if _, _, err := FileTypeFromPath("/data/uploads/archive.zip"); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("FileTypeFromPath() error = %v, want ErrUnsupportedFileType", err)
	}
}

func TestFamily_Collection(t *testing.T) {
	tests := []struct {
		ft   FileType
		want string
	}{
		{TypeTXT, "text"},
		{TypeGo, "text"},
		{TypeJPEG, "image"},
		{TypePDF, "image"},
		{TypeDOCX, "image"},
	}

	for _, tt := range tests {
		if got := tt.ft.Family().Collection(); got != tt.want {
			t.Errorf("%v.Family().Collection() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

func TestFileType_Language(t *testing.T) {
	if lang := TypePy.Language(); lang != LangPython {
		t.Errorf("TypePy.Language() = %v, want python", lang)
	}
	if lang := TypeTXT.Language(); lang != "" {
		t.Errorf("TypeTXT.Language() = %v, want empty", lang)
	}
}
