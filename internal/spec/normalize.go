package spec

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

// BuildOption configures how the ServiceModel is built from an OpenAPI doc.
type BuildOption func(*buildConfig)

type buildConfig struct {
	includeTags map[string]struct{}
	excludeTags map[string]struct{}
	methods     map[HttpMethod]struct{}
	pathRes     []*regexp.Regexp
}

// WithIncludeTags keeps only endpoints that have at least one of the given tags.
func WithIncludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		c.includeTags = addTags(c.includeTags, tags)
	}
}

// WithExcludeTags removes endpoints that have any of the given tags.
func WithExcludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		c.excludeTags = addTags(c.excludeTags, tags)
	}
}

func addTags(set map[string]struct{}, tags []string) map[string]struct{} {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(tags))
		}
		set[t] = struct{}{}
	}
	return set
}

// WithMethods keeps only endpoints using one of the provided HTTP methods.
func WithMethods(methods []HttpMethod) BuildOption {
	return func(c *buildConfig) {
		for _, m := range methods {
			if c.methods == nil {
				c.methods = make(map[HttpMethod]struct{}, len(methods))
			}
			c.methods[HttpMethod(strings.ToLower(string(m)))] = struct{}{}
		}
	}
}

// WithPathPatterns keeps only endpoints whose path matches one of the regular
// expressions. An invalid pattern matches nothing.
func WithPathPatterns(patterns []string) BuildOption {
	return func(c *buildConfig) {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			re, err := regexp.Compile(p)
			if err != nil {
				re = regexp.MustCompile("a^$")
			}
			c.pathRes = append(c.pathRes, re)
		}
	}
}

// BuildServiceModel converts an OpenAPI v3 document into a ServiceModel,
// applying tag, method and path filters.
func BuildServiceModel(ctx context.Context, doc *openapi3.T, opts ...BuildOption) (*ServiceModel, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	sm := &ServiceModel{}
	if doc.Info != nil {
		sm.Title = safeStr(doc.Info.Title)
		sm.Version = safeStr(doc.Info.Version)
		sm.Description = safeStr(doc.Info.Description)
	}
	for _, s := range doc.Servers {
		if s == nil {
			continue
		}
		sm.Servers = append(sm.Servers, Server{URL: safeStr(s.URL), Description: safeStr(s.Description)})
	}

	conv := newSchemaConverter()
	if doc.Components != nil && len(doc.Components.Schemas) > 0 {
		sm.Schemas = make(map[string]*SchemaNode, len(doc.Components.Schemas))
		for _, name := range sortedKeys(doc.Components.Schemas) {
			if node := conv.convert(doc.Components.Schemas[name]); node != nil {
				sm.Schemas[name] = node
			}
		}
	}

	for _, p := range sortedKeys(doc.Paths) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		if !cfg.allowPath(p) {
			continue
		}

		// Path-level parameters first, overridden by operation-level ones.
		base := make(map[string]ParameterModel)
		for _, pref := range item.Parameters {
			if pm, ok := toParameterModel(conv, pref); ok {
				base[paramKey(pm.In, pm.Name)] = pm
			}
		}

		for _, pair := range operations(item) {
			if len(cfg.methods) > 0 {
				if _, ok := cfg.methods[pair.method]; !ok {
					continue
				}
			}
			tags := cleanTags(pair.op.Tags)
			if !cfg.allowTags(tags) {
				continue
			}

			ep := EndpointModel{
				ID:          string(pair.method) + " " + p,
				Method:      pair.method,
				Path:        p,
				Summary:     safeStr(pair.op.Summary),
				Description: safeStr(pair.op.Description),
				Tags:        tags,
				Parameters:  mergeParameters(conv, base, pair.op.Parameters),
			}
			if rb := pair.op.RequestBody; rb != nil && rb.Value != nil {
				ep.RequestBody = &RequestBodyModel{
					Required: rb.Value.Required,
					Content:  toMediaList(conv, rb.Value.Content),
				}
			}
			for _, code := range sortedKeys(pair.op.Responses) {
				rref := pair.op.Responses[code]
				if rref == nil || rref.Value == nil {
					continue
				}
				desc := ""
				if rref.Value.Description != nil {
					desc = safeStr(*rref.Value.Description)
				}
				ep.Responses = append(ep.Responses, ResponseModel{
					Status:      code,
					Description: desc,
					Content:     toMediaList(conv, rref.Value.Content),
				})
			}
			sm.Endpoints = append(sm.Endpoints, ep)
		}
	}

	sm.Tags = collectSortedTags(sm.Endpoints)
	return sm, nil
}

type methodOp struct {
	method HttpMethod
	op     *openapi3.Operation
}

func operations(item *openapi3.PathItem) []methodOp {
	all := []methodOp{
		{GET, item.Get},
		{POST, item.Post},
		{PUT, item.Put},
		{DELETE, item.Delete},
		{PATCH, item.Patch},
		{HEAD, item.Head},
		{OPTIONS, item.Options},
		{TRACE, item.Trace},
	}
	out := all[:0]
	for _, m := range all {
		if m.op != nil {
			out = append(out, m)
		}
	}
	return out
}

func (c *buildConfig) allowPath(p string) bool {
	if len(c.pathRes) == 0 {
		return true
	}
	for _, re := range c.pathRes {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

func (c *buildConfig) allowTags(tags []string) bool {
	if len(c.includeTags) > 0 {
		ok := false
		for _, t := range tags {
			if _, yes := c.includeTags[t]; yes {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, t := range tags {
		if _, blocked := c.excludeTags[t]; blocked {
			return false
		}
	}
	return true
}

// mergeParameters keeps declaration order: path-level parameters that are not
// overridden, then operation-level ones.
func mergeParameters(conv *schemaConverter, base map[string]ParameterModel, refs openapi3.Parameters) []ParameterModel {
	var opParams []ParameterModel
	overridden := map[string]bool{}
	for _, pref := range refs {
		pm, ok := toParameterModel(conv, pref)
		if !ok {
			continue
		}
		overridden[paramKey(pm.In, pm.Name)] = true
		opParams = append(opParams, pm)
	}
	var out []ParameterModel
	for _, k := range sortedKeys(base) {
		if !overridden[k] {
			out = append(out, base[k])
		}
	}
	return append(out, opParams...)
}

func paramKey(in, name string) string { return in + ":" + name }

func safeStr(s string) string { return strings.TrimSpace(s) }

func cleanTags(in []string) []string {
	tags := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func toParameterModel(conv *schemaConverter, pref *openapi3.ParameterRef) (ParameterModel, bool) {
	if pref == nil || pref.Value == nil {
		return ParameterModel{}, false
	}
	p := pref.Value
	pm := ParameterModel{
		Name:     safeStr(p.Name),
		In:       safeStr(p.In),
		Required: p.Required,
		Schema:   conv.convert(p.Schema),
	}
	switch {
	case p.Example != nil:
		pm.Example = jsonvalue.FromNative(p.Example)
	case len(p.Examples) > 0:
		pm.Example = firstExample(p.Examples)
	case pm.Schema != nil && pm.Schema.HasExample:
		pm.Example = pm.Schema.Example
	}
	return pm, true
}

func toMediaList(conv *schemaConverter, content openapi3.Content) []Media {
	var out []Media
	for _, mime := range sortedKeys(content) {
		mt := content[mime]
		if mt == nil {
			continue
		}
		var ex any
		if mt.Example != nil {
			ex = jsonvalue.FromNative(mt.Example)
		} else if len(mt.Examples) > 0 {
			ex = firstExample(mt.Examples)
		}
		out = append(out, Media{Mime: mime, Schema: conv.convert(mt.Schema), Example: ex})
	}
	return out
}

// firstExample picks the example with the lowest name.
func firstExample(examples openapi3.Examples) any {
	names := sortedKeys(examples)
	if ref := examples[names[0]]; ref != nil && ref.Value != nil {
		return jsonvalue.FromNative(ref.Value.Value)
	}
	return nil
}

func collectSortedTags(endpoints []EndpointModel) []string {
	set := make(map[string]struct{})
	for _, ep := range endpoints {
		for _, t := range ep.Tags {
			set[t] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return sortedKeys(set)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindEndpoint looks up an operation by method and path template.
func (sm *ServiceModel) FindEndpoint(method, path string) (*EndpointModel, bool) {
	m := HttpMethod(strings.ToLower(strings.TrimSpace(method)))
	path = strings.TrimSpace(path)
	for i := range sm.Endpoints {
		if sm.Endpoints[i].Method == m && sm.Endpoints[i].Path == path {
			return &sm.Endpoints[i], true
		}
	}
	return nil, false
}

// ParseOperationRef splits "POST /pets/{id}" into method and path.
func ParseOperationRef(ref string) (HttpMethod, string, error) {
	fields := strings.Fields(ref)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "/") {
		return "", "", fmt.Errorf("invalid operation %q (expected \"METHOD /path\")", ref)
	}
	return HttpMethod(strings.ToLower(fields[0])), fields[1], nil
}

// JSONMedia returns the JSON media entry, preferring application/json over
// other +json types and falling back to the first entry.
func JSONMedia(content []Media) (Media, bool) {
	if len(content) == 0 {
		return Media{}, false
	}
	for _, m := range content {
		if m.Mime == "application/json" {
			return m, true
		}
	}
	for _, m := range content {
		if strings.HasSuffix(m.Mime, "+json") {
			return m, true
		}
	}
	return content[0], true
}

// Response returns the response with the given status.
func (ep *EndpointModel) Response(status string) (ResponseModel, bool) {
	for _, r := range ep.Responses {
		if r.Status == status {
			return r, true
		}
	}
	return ResponseModel{}, false
}

// SuccessResponse returns the lowest 2xx response, falling back to "default".
func (ep *EndpointModel) SuccessResponse() (ResponseModel, bool) {
	for _, r := range ep.Responses {
		if strings.HasPrefix(r.Status, "2") {
			return r, true
		}
	}
	return ep.Response("default")
}
