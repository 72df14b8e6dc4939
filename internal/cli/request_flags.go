package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mark3labs/swagger2snippet/internal/explorer"
	"github.com/mark3labs/swagger2snippet/internal/request"
	"github.com/mark3labs/swagger2snippet/internal/spec"
)

// RequestOptions describes the request to render, either directly with --url
// or through an operation of an OpenAPI document.
type RequestOptions struct {
	URL         string
	Method      string
	Data        string
	Operation   string
	Params      []request.Param
	UseExamples bool
}

func addRequestFlags(flags *pflag.FlagSet) {
	flags.String("url", "", "Request URL (use --input and --operation to derive it from a document)")
	flags.StringP("method", "X", "", "HTTP method; GET, or POST when --data is set")
	flags.StringArrayP("header", "H", nil, "Request header \"Name: value\" (repeatable, order is kept)")
	flags.StringP("data", "d", "", "Request body: inline text, @file, or - for stdin")
	flags.String("auth-type", "", "Auth to apply (bearer|api_key|basic|oauth2)")
	flags.String("auth-value", "", "Token, API key, or user:password for basic auth")
	flags.String("input", "", "Path or URL to the Swagger/OpenAPI document")
	flags.String("operation", "", "Operation in the document, e.g. \"POST /pets\"")
	flags.String("server", "", "Base URL overriding the document's first server")
	flags.StringArray("param", nil, "Parameter value name=value for --operation (repeatable)")
	flags.Bool("use-examples", false, "Fill parameters without a value from their examples")
}

// readRequestOptions reads the request flags. stdin backs --data -.
func readRequestOptions(flags *pflag.FlagSet, stdin io.Reader) (RequestOptions, error) {
	var ro RequestOptions
	var err error
	if ro.URL, err = flags.GetString("url"); err != nil {
		return ro, err
	}
	if ro.Method, err = flags.GetString("method"); err != nil {
		return ro, err
	}
	if ro.Operation, err = flags.GetString("operation"); err != nil {
		return ro, err
	}
	if ro.UseExamples, err = flags.GetBool("use-examples"); err != nil {
		return ro, err
	}
	ro.URL = strings.TrimSpace(ro.URL)
	ro.Method = strings.ToUpper(strings.TrimSpace(ro.Method))
	ro.Operation = strings.TrimSpace(ro.Operation)

	if flags.Changed("data") {
		arg, err := flags.GetString("data")
		if err != nil {
			return ro, err
		}
		data, err := readDataArg(arg, stdin)
		if err != nil {
			return ro, usageErrorf("--data: %v", err)
		}
		ro.Data = string(data)
	}

	params, err := flags.GetStringArray("param")
	if err != nil {
		return ro, err
	}
	for _, raw := range params {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return ro, usageErrorf("--param: invalid value %q (expected name=value)", raw)
		}
		ro.Params = append(ro.Params, request.Param{Name: name, Value: value})
	}

	if ro.URL != "" && ro.Operation != "" {
		return ro, newUsageError("--url and --operation cannot be combined")
	}
	if ro.URL == "" && ro.Operation == "" {
		return ro, newUsageError("either --url or --operation is required")
	}
	if ro.Operation == "" && len(ro.Params) > 0 {
		return ro, newUsageError("--param needs --operation")
	}
	if ro.Operation != "" && ro.Method != "" {
		return ro, newUsageError("--method cannot be combined with --operation")
	}
	return ro, nil
}

// readDataArg resolves a --data argument: "-" reads stdin, "@path" reads a
// file, anything else is the body itself.
func readDataArg(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		return os.ReadFile(strings.TrimPrefix(arg, "@"))
	default:
		return []byte(arg), nil
	}
}

// resolveRequest turns config and request options into a descriptor with
// default headers and auth applied. The returned name identifies the request
// for derived file names.
func resolveRequest(ctx context.Context, cfg *Config, ro RequestOptions) (request.Descriptor, string, error) {
	auth, err := cfg.auth()
	if err != nil {
		return request.Descriptor{}, "", err
	}

	if ro.Operation == "" {
		method := ro.Method
		if method == "" && ro.Data != "" {
			method = "POST"
		}
		d := request.Descriptor{
			Method:  method,
			URL:     ro.URL,
			Headers: cfg.Headers,
			Body:    ro.Data,
		}
		d = request.Prepare(d, auth)
		return d, d.NormalizedMethod() + " " + urlPath(ro.URL), nil
	}

	sm, err := loadServiceModel(ctx, cfg.Input)
	if err != nil {
		return request.Descriptor{}, "", err
	}
	ep, err := findOperation(sm, ro.Operation)
	if err != nil {
		return request.Descriptor{}, "", err
	}

	params := make(map[string]string, len(ro.Params))
	for _, p := range ro.Params {
		params[p.Name] = p.Value
	}
	d, err := explorer.BuildRequest(ep, sm.Servers, explorer.Input{
		Server:      cfg.Server,
		Params:      params,
		Headers:     cfg.Headers,
		Body:        ro.Data,
		Auth:        auth,
		UseExamples: ro.UseExamples,
	})
	if err != nil {
		return request.Descriptor{}, "", err
	}
	return d, ep.ID, nil
}

func loadServiceModel(ctx context.Context, input string) (*spec.ServiceModel, error) {
	if input == "" {
		return nil, newUsageError("--input is required with --operation (set via flag, config file or environment)")
	}
	slog.Debug("loading document", "input", input)
	doc, err := spec.Load(ctx, input)
	if err != nil {
		return nil, specUsageError(err)
	}
	sm, err := spec.BuildServiceModel(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	slog.Debug("document loaded", "title", sm.Title, "endpoints", len(sm.Endpoints), "schemas", len(sm.Schemas))
	return sm, nil
}

func findOperation(sm *spec.ServiceModel, ref string) (*spec.EndpointModel, error) {
	method, path, err := spec.ParseOperationRef(ref)
	if err != nil {
		return nil, newUsageError(err.Error())
	}
	ep, ok := sm.FindEndpoint(string(method), path)
	if !ok {
		return nil, usageErrorf("operation %q not found in document", ref)
	}
	return ep, nil
}

// urlPath returns the path of a URL for naming.
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
