// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snapshot builds the copy-paste product digest: a single markdown
// document summarizing active problems, running experiments, recent
// decisions, extracted open questions, and per-type counts for one product.
//
// Generation is read-only and deterministic given the store contents and a
// timestamp. Sections with nothing to report are omitted entirely.
package snapshot
