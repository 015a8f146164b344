// Package extract turns raw files on disk into chunked, embedded Files.
//
// Each supported family has its own extractor:
//   - TextExtractor splits prose with a recursive character splitter
//   - CodeExtractor splits source files at declaration boundaries
//   - ImageExtractor normalizes a single raster image into one chunk
//   - PDFExtractor rasterizes each page into a normalized image chunk
//   - WordExtractor converts documents to PDF and follows the page pipeline
//
// All extractors validate the input path, derive metadata with a content
// digest, and embed every chunk before returning. A failure at any step
// aborts the whole file.
package extract
