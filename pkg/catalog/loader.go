package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy

	validateOnce sync.Once
	validate     *validator.Validate
)

// Parse decodes a JSON or YAML catalog document. Option labels are stripped
// of markup and surrounding whitespace; blank entries are dropped. The
// result is not validated, so partial overlays parse cleanly.
func Parse(data []byte, source string) (Catalog, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Catalog{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	var doc Catalog
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Catalog{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Catalog{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
		}
	}

	return Catalog{
		Services:      sanitizeLabels(doc.Services),
		SubServices:   sanitizeLabels(doc.SubServices),
		ClothingTypes: sanitizeLabels(doc.ClothingTypes),
	}, nil
}

// LoadFS reads a catalog document from fsys.
func LoadFS(fsys fs.FS, path string) (Catalog, error) {
	if fsys == nil {
		return Catalog{}, errors.New("catalog: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads an overlay from disk and merges it over the default
// catalog. An empty path returns the default catalog.
func LoadFile(path string) (Catalog, error) {
	base := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	overlay, err := Parse(data, path)
	if err != nil {
		return Catalog{}, err
	}
	merged := Merge(base, overlay)
	if err := Validate(merged); err != nil {
		return Catalog{}, err
	}
	return merged, nil
}

// Validate checks that every option list is non-empty and free of duplicates.
func Validate(c Catalog) error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("catalog: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Catalog."), fe.Tag()))
	}
	return fmt.Errorf("catalog: invalid options: %s", strings.Join(msgs, "; "))
}

func sanitizeLabels(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	policy := labelSanitizer()
	out := make([]string, 0, len(values))
	for _, value := range values {
		// StrictPolicy escapes entities; labels are plain text.
		cleaned := strings.TrimSpace(html.UnescapeString(policy.Sanitize(value)))
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}
