// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource provides a generic slot store for values that are addressed
// through stable, typed identifiers.
//
// A [Repository] hands out an [ID] for every value it stores. The identifier is
// the slot index plus a compile-time type tag, so an ID[Mesh] can never be
// passed where an ID[Texture] is expected even if both share the same number.
//
// Slots may be overwritten in place:
//
//	repo := resource.NewRepository[Texture]()
//	id := repo.Add(first, nil)     // slot 0, generation 1
//	repo.Add(second, &id)          // slot 0, generation 2
//
// Every write bumps the slot's generation. Dependent caches store the
// generation they were built against and compare it with [Repository.Generation]
// to detect stale entries in O(1).
//
// Repository performs no locking. It is meant to be owned by a single
// goroutine, typically the render loop.
package resource
