package spec

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

var v2Methods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true,
}

// convertV2ToV3 decodes a Swagger 2.0 document, repairs operations that
// kin-openapi cannot convert, and converts the result to OpenAPI 3.
// The document goes through JSON so the openapi2 types see their json tags
// ("basePath", "$ref").
func convertV2ToV3(data []byte, logger *slog.Logger) (*openapi3.T, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	tree, err := jsonvalue.FromYAML(&node)
	if err != nil {
		return nil, err
	}
	root, ok := tree.(*jsonvalue.Object)
	if !ok {
		return nil, errors.New("swagger document must be a mapping")
	}
	if repaired := repairV2Operations(root); len(repaired) > 0 {
		logger.Debug("rewrote swagger 2.0 body parameters", "operations", repaired)
	}

	raw, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&v2)
}

// repairV2Operations rewrites operations whose parameters openapi2conv
// rejects. Several body parameters are merged into one object-typed body;
// body parameters mixed with formData become formData fields and the
// operation consumes multipart/form-data. It returns "METHOD /path" for
// every rewritten operation.
func repairV2Operations(root *jsonvalue.Object) []string {
	paths, _ := lookupObject(root, "paths")
	var repaired []string
	for _, pm := range paths.Members() {
		item, ok := pm.Value.(*jsonvalue.Object)
		if !ok {
			continue
		}
		for _, om := range item.Members() {
			if !v2Methods[strings.ToLower(om.Key)] {
				continue
			}
			op, ok := om.Value.(*jsonvalue.Object)
			if !ok {
				continue
			}
			if repairV2Operation(op) {
				repaired = append(repaired, strings.ToUpper(om.Key)+" "+pm.Key)
			}
		}
	}
	return repaired
}

func repairV2Operation(op *jsonvalue.Object) bool {
	raw, _ := op.Get("parameters")
	params, _ := raw.([]any)

	bodies := 0
	hasFormData := false
	for _, p := range params {
		switch paramIn(p) {
		case "body":
			bodies++
		case "formdata":
			hasFormData = true
		}
	}
	if bodies == 0 || (bodies == 1 && !hasFormData) {
		return false
	}

	if hasFormData {
		out := make([]any, 0, len(params))
		for _, p := range params {
			if paramIn(p) == "body" {
				out = append(out, formDataFromBody(p.(*jsonvalue.Object)))
				continue
			}
			out = append(out, p)
		}
		op.Set("parameters", out)
		consumes, _ := op.Get("consumes")
		list, _ := consumes.([]any)
		for _, c := range list {
			if c == "multipart/form-data" {
				return true
			}
		}
		op.Set("consumes", append(list, "multipart/form-data"))
		return true
	}

	props := jsonvalue.NewObject()
	var required []any
	rest := make([]any, 0, len(params))
	for _, p := range params {
		if paramIn(p) != "body" {
			rest = append(rest, p)
			continue
		}
		pm := p.(*jsonvalue.Object)
		name := stringMember(pm, "name")
		if name == "" {
			name = "field"
		}
		props.Set(name, schemaFromParam(pm))
		if req, _ := pm.Get("required"); req == true {
			required = append(required, name)
		}
	}
	schema := jsonvalue.NewObject()
	schema.Set("type", "object")
	schema.Set("properties", props)
	if len(required) > 0 {
		schema.Set("required", required)
	}
	merged := jsonvalue.NewObject()
	merged.Set("in", "body")
	merged.Set("name", "body")
	merged.Set("schema", schema)
	op.Set("parameters", append([]any{merged}, rest...))
	return true
}

func paramIn(p any) string {
	pm, ok := p.(*jsonvalue.Object)
	if !ok {
		return ""
	}
	return strings.ToLower(stringMember(pm, "in"))
}

func schemaFromParam(pm *jsonvalue.Object) any {
	if s, ok := lookupObject(pm, "schema"); ok {
		return s
	}
	out := jsonvalue.NewObject()
	typ := stringMember(pm, "type")
	if typ == "" {
		typ = "string"
	}
	out.Set("type", typ)
	copyMembers(out, pm, "items", "format")
	return out
}

// formDataFromBody degrades a body parameter to a formData field. Referenced
// schemas cannot be expressed as form fields and become strings.
func formDataFromBody(pm *jsonvalue.Object) *jsonvalue.Object {
	name := stringMember(pm, "name")
	if name == "" {
		name = "field"
	}
	out := jsonvalue.NewObject()
	out.Set("in", "formData")
	out.Set("name", name)
	copyMembers(out, pm, "description", "required")

	src := pm
	if s, ok := lookupObject(pm, "schema"); ok {
		src = s
	}
	typ := stringMember(src, "type")
	if typ == "" || typ == "object" {
		out.Set("type", "string")
		return out
	}
	out.Set("type", typ)
	copyMembers(out, src, "items", "format")
	return out
}

func lookupObject(o *jsonvalue.Object, key string) (*jsonvalue.Object, bool) {
	v, _ := o.Get(key)
	obj, ok := v.(*jsonvalue.Object)
	return obj, ok
}

func stringMember(o *jsonvalue.Object, key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

func copyMembers(dst, src *jsonvalue.Object, keys ...string) {
	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			dst.Set(k, v)
		}
	}
}

