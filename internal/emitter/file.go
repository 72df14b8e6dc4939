package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteFile writes content to path through a temp file and rename. An
// existing file is replaced only when force is set.
func WriteFile(path string, content []byte, force bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if st, err := os.Stat(abs); err == nil {
		if st.IsDir() {
			return fmt.Errorf("output path %q is a directory", abs)
		}
		if !force {
			return fmt.Errorf("output file %q exists (use --force to overwrite)", abs)
		}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := abs + ".tmp-" + time.Now().Format("20060102150405")
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(abs), err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(abs), err)
	}
	return nil
}

// FileName derives a file name such as "post-pets-petid.python-requests.py"
// from an operation id and a snippet.
func FileName(operation string, s *Snippet) string {
	base := slug(operation)
	if base == "" {
		base = "request"
	}
	ext := ""
	if l, ok := Lookup(s.Language); ok {
		ext = l.Extension
	}
	return base + "." + s.Language + "-" + strings.ReplaceAll(s.Variant, "_", "-") + ext
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	repl := strings.NewReplacer("/", " ", "_", " ", ".", " ", ",", " ", ":", " ", "{", " ", "}", " ")
	s = repl.Replace(s)
	var b strings.Builder
	for _, part := range strings.Fields(s) {
		clean := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
				return r
			}
			return -1
		}, part)
		if clean == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(clean)
	}
	return b.String()
}
