// Package loader provides a layered, file-based config.Source.
//
// Every layer is a directory. Section "database" is read from
// database.yaml, database.yml and database.json in each layer; layers are
// merged in the order given, later layers overriding earlier ones key by key:
//
//	config/database.yaml             base values
//	config/production/database.yaml  overrides for production
//
//	l, err := loader.New(yamlparser.NewParser(), []string{"config", "config/production"})
//
// A section missing from every layer is reported as config.ErrSectionNotFound.
// The Loader also implements config.Watcher using fsnotify, so a Registry can
// drop sections whose files change.
package loader
