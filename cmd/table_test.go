// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/prodtrack/internal/model"
)

func TestRenderTable_Alignment(t *testing.T) {
	out := renderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"1a2b3c4d", "Checkout"},
			{"ff00ff00", "A much longer product name"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	// Second column starts at the same offset in every row.
	idx1 := strings.Index(lines[1], "Checkout")
	idx2 := strings.Index(lines[2], "A much longer")
	if idx1 != idx2 {
		t.Errorf("columns misaligned: %d vs %d\n%s", idx1, idx2, out)
	}
}

func TestRenderTable_WideRunes(t *testing.T) {
	out := renderTable(
		[]string{"NAME", "STATUS"},
		[][]string{
			{"日本語テスト", "active"},
			{"ascii", "done"},
		},
	)
	// Visual column offsets must match even though byte offsets differ.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	off1 := runewidth.StringWidth(lines[1][:strings.Index(lines[1], "active")])
	off2 := runewidth.StringWidth(lines[2][:strings.Index(lines[2], "done")])
	if off1 != off2 {
		t.Errorf("wide runes broke alignment: %d vs %d\n%s", off1, off2, out)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestCountFooter(t *testing.T) {
	if got := countFooter(1, "entity", "entities"); got != "1 entity" {
		t.Errorf("got %q", got)
	}
	if got := countFooter(3, "entity", "entities"); got != "3 entities" {
		t.Errorf("got %q", got)
	}
}

func TestEntityRow_TruncatesLongTitle(t *testing.T) {
	e := model.NewEntity("p1", model.TypeProblem, strings.Repeat("very long title ", 10))

	row := entityRow(e)
	title := row[2]
	if got := len([]rune(title)); got > listTitleWidth {
		t.Errorf("title has %d runes, want <= %d: %q", got, listTitleWidth, title)
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("truncated title missing ellipsis: %q", title)
	}

	short := model.NewEntity("p1", model.TypeProblem, "Short title")
	if got := entityRow(short)[2]; got != "Short title" {
		t.Errorf("short title altered: %q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate(" 2024-06-01 ")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 6 || d.Day() != 1 {
		t.Errorf("parsed %v", d)
	}
	if _, err := parseDate("06/01/2024"); err == nil {
		t.Error("expected error for wrong format")
	}
}
