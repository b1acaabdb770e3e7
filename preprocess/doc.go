/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package preprocess normalizes raw items before they are written to a
// table: key attributes are renamed to their declared (possibly prefixed)
// names and their values coerced to the scalar type the table declares.
// Processing is pure; the input item is never modified.
package preprocess
