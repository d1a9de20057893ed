// Package output formats hvui command results as kubectl-style tables, JSON or YAML.
//
// Single values go through Format. Values implementing Tabular render as a
// table with their own headers; anything else is printed as is in table mode.
// Per-cluster task results go through FormatResults. In table mode, result
// data implementing Columnar contributes columns between CLUSTER and STATUS:
//
//	CLUSTER   PACKAGE            URL                                       STATUS
//	hv-east   harvester-1.2.1    k8s/clusters/c-m-x1/v1/harvester/...      Success
//
// Colors follow the terminal: they are disabled for pipes, redirects and
// WithNoColor(true).
package output
