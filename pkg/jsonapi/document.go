package jsonapi

// DocumentBuilder builds Document objects.
type DocumentBuilder struct {
	doc Document
}

// NewDocument starts an empty document.
func NewDocument() *DocumentBuilder {
	return &DocumentBuilder{}
}

// Data sets the primary data.
func (b *DocumentBuilder) Data(data any) *DocumentBuilder {
	b.doc.Data = data
	b.doc.Errors = nil
	return b
}

// Collection sets a collection as the primary data. A nil slice is written
// as an empty array.
func (b *DocumentBuilder) Collection(resources []Resource) *DocumentBuilder {
	if resources == nil {
		resources = []Resource{}
	}
	return b.Data(resources)
}

// Errors sets the errors and clears the data.
func (b *DocumentBuilder) Errors(errs ...Error) *DocumentBuilder {
	b.doc.Errors = errs
	b.doc.Data = nil
	return b
}

// Meta adds a metadata entry.
func (b *DocumentBuilder) Meta(key string, value any) *DocumentBuilder {
	if b.doc.Meta == nil {
		b.doc.Meta = make(Meta)
	}
	b.doc.Meta[key] = value
	return b
}

// Pagination adds pagination metadata and links.
func (b *DocumentBuilder) Pagination(p *Pagination) *DocumentBuilder {
	if p == nil {
		return b
	}
	for k, v := range p.Meta() {
		b.Meta(k, v)
	}
	b.doc.Links = p.Links()
	return b
}

// JSONAPI sets the version object.
func (b *DocumentBuilder) JSONAPI() *DocumentBuilder {
	b.doc.JSONAPI = &JSONAPI{Version: Version}
	return b
}

// Build returns the constructed Document.
func (b *DocumentBuilder) Build() Document {
	return b.doc
}

// NewCollectionDocument creates a collection document with optional pagination.
func NewCollectionDocument(resources []Resource, p *Pagination) Document {
	return NewDocument().Collection(resources).Pagination(p).Build()
}

// NewErrorDocument creates an error document.
func NewErrorDocument(errs ...Error) Document {
	return NewDocument().Errors(errs...).Build()
}
