// Package domain contains the core domain model for foilopt.
//
// The domain is storage- and solver-agnostic: it does not depend on YAML parsing,
// coordinate file formats, or the filesystem. Infra/adapters map into/from these types.
package domain
