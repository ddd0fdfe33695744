package jsonapi

// ResourceBuilder builds Resource objects.
type ResourceBuilder struct {
	resource Resource
}

// NewResource starts a resource with the given type and ID.
func NewResource(resourceType, id string) *ResourceBuilder {
	return &ResourceBuilder{
		resource: Resource{
			Type:       resourceType,
			ID:         id,
			Attributes: make(map[string]any),
		},
	}
}

// Attr sets an attribute. The reserved names id and type are ignored.
func (b *ResourceBuilder) Attr(key string, value any) *ResourceBuilder {
	if key == "id" || key == "type" {
		return b
	}
	b.resource.Attributes[key] = value
	return b
}

// Meta adds resource-level metadata.
func (b *ResourceBuilder) Meta(key string, value any) *ResourceBuilder {
	if b.resource.Meta == nil {
		b.resource.Meta = make(Meta)
	}
	b.resource.Meta[key] = value
	return b
}

// Link sets the self link.
func (b *ResourceBuilder) Link(self string) *ResourceBuilder {
	b.resource.Links = &Links{Self: self}
	return b
}

// Build returns the constructed Resource.
func (b *ResourceBuilder) Build() Resource {
	return b.resource
}
