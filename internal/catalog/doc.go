// Package catalog loads the YAML lookup tables: display strings and the
// list of armor forms hidden while bow mode is active.
package catalog
