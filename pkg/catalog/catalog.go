package catalog

import "strings"

// Catalog holds the enumerated option lists offered by the service form.
// Option order is display order.
type Catalog struct {
	Services      []string `json:"services" yaml:"services" validate:"required,min=1,unique,dive,required"`
	SubServices   []string `json:"subServices" yaml:"subServices" validate:"required,min=1,unique,dive,required"`
	ClothingTypes []string `json:"clothingTypes" yaml:"clothingTypes" validate:"required,min=1,unique,dive,required"`
}

// HasService reports whether name is one of the service options.
func (c Catalog) HasService(name string) bool {
	return contains(c.Services, name)
}

// HasSubService reports whether name is one of the sub-service options.
func (c Catalog) HasSubService(name string) bool {
	return contains(c.SubServices, name)
}

// HasClothingType reports whether name is one of the clothing type options.
func (c Catalog) HasClothingType(name string) bool {
	return contains(c.ClothingTypes, name)
}

// Clone returns a copy that shares no slices with c.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Services:      append([]string(nil), c.Services...),
		SubServices:   append([]string(nil), c.SubServices...),
		ClothingTypes: append([]string(nil), c.ClothingTypes...),
	}
}

// Merge returns base with every non-empty list of overlay replacing the
// corresponding list.
func Merge(base, overlay Catalog) Catalog {
	out := base.Clone()
	if len(overlay.Services) > 0 {
		out.Services = append([]string(nil), overlay.Services...)
	}
	if len(overlay.SubServices) > 0 {
		out.SubServices = append([]string(nil), overlay.SubServices...)
	}
	if len(overlay.ClothingTypes) > 0 {
		out.ClothingTypes = append([]string(nil), overlay.ClothingTypes...)
	}
	return out
}

func contains(options []string, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
