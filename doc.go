// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factorial provides a clean, single-import interface to the
// factory simulation engine. This is the main SDK surface for games
// embedding the engine; internals live in the tick, query, serialize,
// graph, registry, and related subpackages.
package factorial
