package spec

// Service model distilled from an OpenAPI document. Schemas are fully
// dereferenced SchemaNode graphs and may be cyclic.

type HttpMethod string

const (
	GET     HttpMethod = "get"
	POST    HttpMethod = "post"
	PUT     HttpMethod = "put"
	DELETE  HttpMethod = "delete"
	PATCH   HttpMethod = "patch"
	HEAD    HttpMethod = "head"
	OPTIONS HttpMethod = "options"
	TRACE   HttpMethod = "trace"
)

type ServiceModel struct {
	Title       string
	Version     string
	Description string
	Servers     []Server
	Tags        []string
	Endpoints   []EndpointModel
	Schemas     map[string]*SchemaNode // components by name
}

type Server struct {
	URL         string
	Description string
}

type EndpointModel struct {
	ID          string // "get /pets"
	Method      HttpMethod
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []ParameterModel
	RequestBody *RequestBodyModel
	Responses   []ResponseModel
}

type ParameterModel struct {
	Name     string
	In       string // path|query|header|cookie
	Required bool
	Schema   *SchemaNode
	Example  any
}

type RequestBodyModel struct {
	Content  []Media
	Required bool
}

type ResponseModel struct {
	Status      string // 200, 4xx, default
	Description string
	Content     []Media
}

type Media struct {
	Mime   string
	Schema *SchemaNode
	// Example is the media-level example, nil when none is declared.
	Example any
}

// SchemaNode is the part of a schema that example synthesis reads.
type SchemaNode struct {
	Type       string
	Properties []Property
	Items      *SchemaNode
	Enum       []any
	Example    any
	// HasExample is set when the source declared an example, even a null one.
	HasExample bool
}

// Property is one named object property, kept in declaration order.
type Property struct {
	Name   string
	Schema *SchemaNode
}

// Property returns the schema of the named property.
func (s *SchemaNode) Property(name string) (*SchemaNode, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// HasProperties reports whether the schema declares a properties mapping.
func (s *SchemaNode) HasProperties() bool {
	return s != nil && s.Properties != nil
}
