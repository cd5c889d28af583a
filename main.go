// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prodtrack is a local-first tracker for product-management artifacts:
// problems, hypotheses, experiments, decisions, and the taxonomy they are
// tagged against, with markdown export for sharing.
package main

import "github.com/jeranaias/prodtrack/cmd"

func main() {
	cmd.Execute()
}
