package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

const (
	mimetypeContent = "application/epub+zip"
	oebpsDir        = "OEBPS"
	xhtmlMediaType  = "application/xhtml+xml"
	coverID         = "cover-image"
)

func (b *Builder) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	if err := writeMimetype(zw); err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	if err := writeContainer(zw); err != nil {
		return fmt.Errorf("writing container: %w", err)
	}
	if err := b.writeOPF(zw); err != nil {
		return fmt.Errorf("writing package document: %w", err)
	}
	if err := b.writeNCX(zw); err != nil {
		return fmt.Errorf("writing NCX: %w", err)
	}
	if b.version == V3 {
		if err := b.writeNav(zw); err != nil {
			return fmt.Errorf("writing navigation document: %w", err)
		}
	}
	if err := writeDataToZip(zw, path.Join(oebpsDir, "stylesheet.css"), b.stylesheet); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	for _, p := range b.pages {
		if err := writeDataToZip(zw, path.Join(oebpsDir, p.Path), p.Data); err != nil {
			return fmt.Errorf("writing page %s: %w", p.Path, err)
		}
	}
	for _, r := range b.resources {
		if err := writeDataToZip(zw, path.Join(oebpsDir, r.path), r.data); err != nil {
			return fmt.Errorf("writing resource %s: %w", r.path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	b.logger.Debug("package written",
		zap.Stringer("version", b.version),
		zap.Int("pages", len(b.pages)),
		zap.Int("resources", len(b.resources)))
	return nil
}

func writeMimetype(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, mimetypeContent)
	return err
}

func writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", path.Join(oebpsDir, "content.opf"))
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func pageID(i int) string     { return "page-" + strconv.Itoa(i+1) }
func resourceID(i int) string { return "res-" + strconv.Itoa(i+1) }

func (b *Builder) writeOPF(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("unique-identifier", "BookId")
	pkg.CreateAttr("version", b.version.String())

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	metadata.CreateAttr("xmlns:opf", "http://www.idpf.org/2007/opf")

	dcTitle := metadata.CreateElement("dc:title")
	dcTitle.SetText(b.meta.Title)

	dcIdentifier := metadata.CreateElement("dc:identifier")
	dcIdentifier.CreateAttr("id", "BookId")
	dcIdentifier.SetText(b.meta.identifier())

	dcLang := metadata.CreateElement("dc:language")
	dcLang.SetText(b.meta.Lang)

	if b.meta.Author != "" {
		dcCreator := metadata.CreateElement("dc:creator")
		if b.version == V2 {
			dcCreator.CreateAttr("opf:role", "aut")
		}
		dcCreator.SetText(b.meta.Author)
	}

	if b.meta.Description != "" {
		dcDescription := metadata.CreateElement("dc:description")
		dcDescription.SetText(b.meta.Description)
	}

	if b.meta.Generator != "" {
		meta := metadata.CreateElement("meta")
		meta.CreateAttr("name", "generator")
		meta.CreateAttr("content", b.meta.Generator)
	}

	if b.version == V3 {
		modified := b.meta.Modified
		if modified.IsZero() {
			modified = time.Now()
		}
		meta := metadata.CreateElement("meta")
		meta.CreateAttr("property", "dcterms:modified")
		meta.SetText(modified.UTC().Format("2006-01-02T15:04:05Z"))
	}

	hasCover := false
	for _, r := range b.resources {
		if r.cover {
			hasCover = true
		}
	}
	if hasCover {
		meta := metadata.CreateElement("meta")
		meta.CreateAttr("name", "cover")
		meta.CreateAttr("content", coverID)
	}

	manifest := pkg.CreateElement("manifest")

	ncxItem := manifest.CreateElement("item")
	ncxItem.CreateAttr("id", "ncx")
	ncxItem.CreateAttr("href", "toc.ncx")
	ncxItem.CreateAttr("media-type", "application/x-dtbncx+xml")

	if b.version == V3 {
		navItem := manifest.CreateElement("item")
		navItem.CreateAttr("id", "nav")
		navItem.CreateAttr("href", "nav.xhtml")
		navItem.CreateAttr("media-type", xhtmlMediaType)
		navItem.CreateAttr("properties", "nav")
	}

	cssItem := manifest.CreateElement("item")
	cssItem.CreateAttr("id", "stylesheet")
	cssItem.CreateAttr("href", "stylesheet.css")
	cssItem.CreateAttr("media-type", "text/css")

	for i, p := range b.pages {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", pageID(i))
		item.CreateAttr("href", p.Path)
		item.CreateAttr("media-type", xhtmlMediaType)
	}

	for i, r := range b.resources {
		item := manifest.CreateElement("item")
		if r.cover {
			item.CreateAttr("id", coverID)
		} else {
			item.CreateAttr("id", resourceID(i))
		}
		item.CreateAttr("href", r.path)
		item.CreateAttr("media-type", r.mediaType)
		if r.cover && b.version == V3 {
			item.CreateAttr("properties", "cover-image")
		}
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	for i := range b.pages {
		itemref := spine.CreateElement("itemref")
		itemref.CreateAttr("idref", pageID(i))
	}

	return writeXMLToZip(zw, path.Join(oebpsDir, "content.opf"), doc)
}

func (b *Builder) writeNCX(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	tree := buildTOC(b.pages)

	head := ncx.CreateElement("head")

	metaUID := head.CreateElement("meta")
	metaUID.CreateAttr("name", "dtb:uid")
	metaUID.CreateAttr("content", b.meta.identifier())

	metaDepth := head.CreateElement("meta")
	metaDepth.CreateAttr("name", "dtb:depth")
	metaDepth.CreateAttr("content", strconv.Itoa(tree.depth()))

	metaTotal := head.CreateElement("meta")
	metaTotal.CreateAttr("name", "dtb:totalPageCount")
	metaTotal.CreateAttr("content", "0")

	metaMax := head.CreateElement("meta")
	metaMax.CreateAttr("name", "dtb:maxPageNumber")
	metaMax.CreateAttr("content", "0")

	docTitle := ncx.CreateElement("docTitle")
	text := docTitle.CreateElement("text")
	text.SetText(b.meta.Title)

	navMap := ncx.CreateElement("navMap")
	playOrder := 0
	buildNCXNavPoints(navMap, tree.children, &playOrder)

	return writeXMLToZip(zw, path.Join(oebpsDir, "toc.ncx"), doc)
}

func buildNCXNavPoints(parent *etree.Element, nodes []*tocNode, playOrder *int) {
	for _, n := range nodes {
		*playOrder++
		navPoint := parent.CreateElement("navPoint")
		navPoint.CreateAttr("id", "navpoint-"+strconv.Itoa(*playOrder))
		navPoint.CreateAttr("playOrder", strconv.Itoa(*playOrder))

		navLabel := navPoint.CreateElement("navLabel")
		labelText := navLabel.CreateElement("text")
		labelText.SetText(n.page.Title)

		navContent := navPoint.CreateElement("content")
		navContent.CreateAttr("src", n.page.Path)

		buildNCXNavPoints(navPoint, n.children, playOrder)
	}
}

func (b *Builder) writeNav(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	if b.meta.Lang != "" {
		html.CreateAttr("xml:lang", b.meta.Lang)
	}

	head := html.CreateElement("head")
	title := head.CreateElement("title")
	title.SetText(b.meta.Title)

	body := html.CreateElement("body")

	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")

	h1 := nav.CreateElement("h1")
	h1.SetText("Table of Contents")

	buildNavOL(nav, buildTOC(b.pages).children)

	return writeXMLToZip(zw, path.Join(oebpsDir, "nav.xhtml"), doc)
}

func buildNavOL(parent *etree.Element, nodes []*tocNode) {
	if len(nodes) == 0 {
		return
	}
	ol := parent.CreateElement("ol")
	for _, n := range nodes {
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", n.page.Path)
		a.SetText(n.page.Title)
		buildNavOL(li, n.children)
	}
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
