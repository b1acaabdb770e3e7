/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package filtersort provides pure in-memory projection and ordering helpers
// for scanned items. Nothing here touches the backend; the functions operate
// on item slices a scan already produced.
package filtersort
