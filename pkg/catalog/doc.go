// Package catalog defines the enumerated inputs of the service form: the
// service, sub-service and clothing type option lists together with the wash
// and pricing type enumerations. The default lists are compiled in from
// data/catalog.yaml; deployments may overlay any list with a JSON or YAML file
// through LoadFile. Overlay labels are treated as plain text and stripped of
// markup before use.
package catalog
