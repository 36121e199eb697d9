// Package reader provides PDF page access for extraction.
//
// Text, page bounds, metadata and page rasters come from MuPDF through
// go-fitz. Embedded images and page rotation come from pdfcpu, which is
// loaded lazily the first time a page's objects are needed.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [New] with any [Engine] and [Structure] implementation.
//
// # Page Access
//
// Pages are numbered from 1:
//
//   - PageCount() - number of pages
//   - PageText(n) - text layer of page n
//   - PageSize(n) - width and height in points
//   - RenderPNG(n) - page raster at [RasterDPI]
//   - PageImages(n) - embedded image XObjects
//   - PageRotation(n) - /Rotate in degrees
//
// # Document Information
//
//   - Metadata() - info dictionary and PDF version
package reader
