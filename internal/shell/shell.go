// Package shell renders a request as a curl or PowerShell command.
package shell

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

// Style selects the command dialect.
type Style string

const (
	Multiline  Style = "multiline"
	Single     Style = "single"
	Escaped    Style = "escaped"
	PowerShell Style = "powershell"
)

// Styles lists the supported dialects in display order.
var Styles = []Style{Multiline, Single, Escaped, PowerShell}

// ParseStyle validates s. The empty string selects Multiline.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return Multiline, nil
	}
	for _, known := range Styles {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown shell style %q (expected multiline, single, escaped or powershell)", s)
}

// MIMEType is the content type used when the command is downloaded.
func (s Style) MIMEType() string {
	if s == PowerShell {
		return "text/plain"
	}
	return "text/x-sh"
}

// Extension is the file extension used when the command is downloaded.
func (s Style) Extension() string {
	if s == PowerShell {
		return ".ps1"
	}
	return ".sh"
}

// Format renders req in style. Headers are used exactly as given; callers
// fold defaults and auth in with request.Prepare first. Unknown styles render
// as Multiline.
func Format(req request.Descriptor, style Style) string {
	if style == PowerShell {
		return powershell(req)
	}
	tokens := curlTokens(req)
	switch style {
	case Single:
		return strings.Join(tokens, " ")
	case Escaped:
		quoted := make([]string, len(tokens))
		for i, tok := range tokens {
			quoted[i] = `"` + escapeDoubleQuoted(tok) + `"`
		}
		return strings.Join(quoted, " ")
	default:
		return strings.Join(tokens, " \\\n  ")
	}
}

func curlTokens(req request.Descriptor) []string {
	tokens := []string{
		"curl -X " + req.NormalizedMethod(),
		`"` + req.URL + `"`,
	}
	for _, h := range req.Headers {
		tokens = append(tokens, fmt.Sprintf(`-H "%s: %s"`, h.Name, h.Value))
	}
	if body, ok := bodyText(req); ok {
		tokens = append(tokens, "-d '"+body+"'")
	}
	return tokens
}

// bodyText returns the body compacted when it is JSON and verbatim otherwise.
func bodyText(req request.Descriptor) (string, bool) {
	p, ok := req.Payload()
	if !ok {
		return "", false
	}
	if p.JSON {
		if compact, err := jsonvalue.Compact(p.Value); err == nil {
			return compact, true
		}
	}
	return p.Raw, true
}

func escapeDoubleQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func quotePS(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func powershell(req request.Descriptor) string {
	var b strings.Builder
	b.WriteString("$headers = @{\n")
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "    %s = %s\n", quotePS(h.Name), quotePS(h.Value))
	}
	b.WriteString("}\n")

	body, hasBody := bodyText(req)
	if hasBody {
		fmt.Fprintf(&b, "$body = %s\n", quotePS(body))
	}

	fmt.Fprintf(&b, "\nInvoke-WebRequest -Uri %s -Method %s -Headers $headers", quotePS(req.URL), req.NormalizedMethod())
	if hasBody {
		fmt.Fprintf(&b, " -Body $body -ContentType %s", quotePS(request.ContentTypeJSON))
	}
	return b.String()
}
