// Package metadata exposes the public contracts of the loader and parser
// stages together with the immutable property model they produce. Concrete
// loader and parser implementations live under internal/metadata; the root
// propdoc package provides constructors.
package metadata
