// Package mock provides test doubles for the ai package.
//
// The mock embedder produces deterministic, dimension-correct vectors so
// pipeline tests can assert on store contents without a model server.
package mock
