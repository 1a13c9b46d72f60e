package ast

// AttrKey is the closed enumeration of node attribute keys. Keys are not
// free-form strings, so unknown attributes cannot be introduced accidentally.
type AttrKey string

const (
	AttrName            AttrKey = "name"
	AttrUSR             AttrKey = "usr"
	AttrDisplayName     AttrKey = "display_name"
	AttrDataType        AttrKey = "data_type"
	AttrReturnType      AttrKey = "return_type"
	AttrAccessSpecifier AttrKey = "access_specifier"
	AttrBaseClasses     AttrKey = "base_classes"
	AttrBelongsTo       AttrKey = "belongs_to"
	AttrAttributes      AttrKey = "attributes"
	AttrValue           AttrKey = "value"
	AttrParameterIndex  AttrKey = "parameter_index"
	AttrDefinition      AttrKey = "definition"
	AttrDiagnostic      AttrKey = "diagnostic"
)

// AllAttrKeys lists every attribute key, in rendering order.
func AllAttrKeys() []AttrKey {
	return []AttrKey{
		AttrName, AttrUSR, AttrDisplayName, AttrDataType, AttrReturnType,
		AttrAccessSpecifier, AttrBaseClasses, AttrBelongsTo, AttrAttributes,
		AttrValue, AttrParameterIndex, AttrDefinition, AttrDiagnostic,
	}
}

// AccessSpecifier is a C++ member access level.
type AccessSpecifier string

const (
	AccessPublic    AccessSpecifier = "public"
	AccessPrivate   AccessSpecifier = "private"
	AccessProtected AccessSpecifier = "protected"
)

// AttributeMap holds string-shaped attribute values for one node.
// Writes are once per key: a second Set for the same key is ignored, which
// keeps the first extraction stage's value authoritative.
type AttributeMap struct {
	data map[AttrKey]string
}

// NewAttributeMap returns an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{data: make(map[AttrKey]string)}
}

// Set stores a value for key unless the key was already written.
// Returns true if the value was stored.
func (m *AttributeMap) Set(key AttrKey, value string) bool {
	if _, exists := m.data[key]; exists {
		return false
	}
	m.data[key] = value
	return true
}

// Get returns the value for key and whether it was set.
func (m *AttributeMap) Get(key AttrKey) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

// GetOr returns the value for key, or fallback when unset.
func (m *AttributeMap) GetOr(key AttrKey, fallback string) string {
	if v, ok := m.data[key]; ok {
		return v
	}
	return fallback
}

// Has reports whether key was written.
func (m *AttributeMap) Has(key AttrKey) bool {
	_, ok := m.data[key]
	return ok
}

// Len returns the number of written attributes.
func (m *AttributeMap) Len() int { return len(m.data) }

// Snapshot returns a copy of the underlying data, used to freeze the map
// into a finalized node.
func (m *AttributeMap) Snapshot() map[AttrKey]string {
	out := make(map[AttrKey]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
