// Package files discovers table files on disk for batch cleaning.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/srv/datasets")
//	tables, err := discovery.FindTables("wine")
//	for _, f := range tables {
//	    // f.Path, f.Format
//	}
package files
