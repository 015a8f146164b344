package pipeline

import (
	"fmt"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/extract"
)

// route pairs the extractor and uploader handling one file type.
type route struct {
	extractor extract.Extractor
	uploader  Uploader
}

// Factory resolves the extractor/uploader pair for a file type. The routing
// table is built once at construction and read-only afterwards, so Resolve is
// safe for concurrent use.
type Factory struct {
	routes map[core.FileType]route
}

// FactoryOption configures a Factory.
type FactoryOption func(*factorySettings)

type factorySettings struct {
	runner extract.CommandRunner
}

// WithCommandRunner substitutes the subprocess runner used by the PDF and
// Word extractors.
func WithCommandRunner(runner extract.CommandRunner) FactoryOption {
	return func(s *factorySettings) {
		s.runner = runner
	}
}

// NewFactory builds the routing table: one extractor per family, the shared
// uploader for every type. This is the single registration point for
// supported file types.
func NewFactory(embedder ai.Embedder, uploader Uploader, opts ...FactoryOption) (*Factory, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if uploader == nil {
		return nil, ErrUploaderRequired
	}

	var settings factorySettings
	for _, opt := range opts {
		opt(&settings)
	}

	text, err := extract.NewTextExtractor(embedder)
	if err != nil {
		return nil, err
	}
	code, err := extract.NewCodeExtractor(embedder)
	if err != nil {
		return nil, err
	}
	img, err := extract.NewImageExtractor(embedder)
	if err != nil {
		return nil, err
	}
	pdf, err := extract.NewPDFExtractor(embedder, settings.runner)
	if err != nil {
		return nil, err
	}
	word, err := extract.NewWordExtractor(embedder, settings.runner)
	if err != nil {
		return nil, err
	}

	routes := map[core.FileType]route{
		core.TypeTXT:  {text, uploader},
		core.TypeMD:   {text, uploader},
		core.TypeGo:   {code, uploader},
		core.TypePy:   {code, uploader},
		core.TypeJS:   {code, uploader},
		core.TypeTS:   {code, uploader},
		core.TypeJava: {code, uploader},
		core.TypeC:    {code, uploader},
		core.TypeCPP:  {code, uploader},
		core.TypeRS:   {code, uploader},
		core.TypeRB:   {code, uploader},
		core.TypeJPEG: {img, uploader},
		core.TypeJPG:  {img, uploader},
		core.TypePNG:  {img, uploader},
		core.TypePDF:  {pdf, uploader},
		core.TypeDOCX: {word, uploader},
	}

	return &Factory{routes: routes}, nil
}

// Resolve returns the extractor and uploader for a file type.
func (f *Factory) Resolve(ft core.FileType) (extract.Extractor, Uploader, error) {
	r, ok := f.routes[ft]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFileType, ft)
	}
	return r.extractor, r.uploader, nil
}
