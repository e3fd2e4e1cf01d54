// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete backend to run, which in
// turn register their factories with the storage package. Importing it makes
// the following storage kinds available at runtime:
//
//   - "sqlite"   (layoffs/internal/storage/sqlite)
//   - "postgres" (layoffs/internal/storage/postgres)
//   - "mysql"    (layoffs/internal/storage/mysql)
//
// Binaries that only need a subset can blank-import individual backends
// instead.
package all

import (
	_ "layoffs/internal/storage/mysql"
	_ "layoffs/internal/storage/postgres"
	_ "layoffs/internal/storage/sqlite"
)
