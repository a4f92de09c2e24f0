// Package services contains the core pipeline logic: document composition,
// sync planning, ingestion orchestration and the query engine. Services
// depend only on domain types and driven ports.
package services
