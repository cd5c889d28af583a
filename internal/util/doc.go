// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the prodtrack application.
//
// This package contains common helper functions used throughout the
// application for string manipulation, markdown text cleanup, and file
// operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - Slugify: filename-safe slugs derived from titles
//   - StripHTML: tag removal and entity decoding for rich-text bodies
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Derive a deterministic filename from a title
//	name := util.Slugify("My Cool Idea!!!") // "my-cool-idea"
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
