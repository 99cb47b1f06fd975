package extract

import (
	"strings"
	"testing"
)

func TestCompileRoundTrip(t *testing.T) {
	// Every synthesized matcher accepts its own exemplar with a
	// non-empty numbering group.
	samples := []string{
		"9.1",
		"9.1.1",
		"3.2.",
		"1）",
		"2)",
		"（1）",
		"(3)",
		"（一）",
		"（十二）",
		"1.",
		"第一章",
		"一、",
		"【附件】",
	}
	for _, sample := range samples {
		m, err := Compile(sample)
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %v", sample, err)
		}
		number, _, ok := m.Match(stripSpace(sample))
		if !ok {
			t.Errorf("matcher for %q does not accept its own exemplar (pattern %s)", sample, m.Pattern())
			continue
		}
		if strings.TrimSpace(number) == "" {
			t.Errorf("matcher for %q matched with empty numbering group", sample)
		}
	}
}

func TestCompileRejectsEmptySample(t *testing.T) {
	for _, sample := range []string{"", "   ", "　"} {
		if _, err := Compile(sample); err == nil {
			t.Errorf("Compile(%q): expected error, got nil", sample)
		}
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	a, err := Compile("9.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Compile("9.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Pattern() != b.Pattern() {
		t.Errorf("patterns differ: %s vs %s", a.Pattern(), b.Pattern())
	}
}

func TestMatchIsAnchored(t *testing.T) {
	m, err := Compile("9.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Matches("前言9.1模块") {
		t.Error("expected mid-line numbering to be rejected")
	}
}

func TestMatchConsumesTrailingSeparators(t *testing.T) {
	m, err := Compile("9.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	number, rest, ok := m.Match("9.1、模块名称")
	if !ok {
		t.Fatal("expected match")
	}
	if number != "9.1、" {
		t.Errorf("expected numbering %q, got %q", "9.1、", number)
	}
	if rest != "模块名称" {
		t.Errorf("expected rest %q, got %q", "模块名称", rest)
	}
}

func TestSmartMatchReflexive(t *testing.T) {
	for _, sample := range []string{"9.1", "（一）", "1）", "第一章"} {
		m, err := Compile(sample)
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %v", sample, err)
		}
		if ok, _, _ := m.SmartMatch(stripSpace(sample)); !ok {
			t.Errorf("SmartMatch(%q) on its own exemplar = false", sample)
		}
	}
}

func TestSmartMatchDigitPrefix(t *testing.T) {
	m, err := Compile("9.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _, _ := m.SmartMatch("9.1.2子项"); !ok {
		t.Error("expected 9.1 to cover the deeper 9.1.2")
	}
	if ok, _, _ := m.SmartMatch("9.3模块"); ok {
		t.Error("expected 9.1 not to cover the sibling 9.3")
	}
}

func TestSmartMatchRejectsShorterCandidate(t *testing.T) {
	m, err := Compile("9.12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _, _ := m.SmartMatch("9.1模块"); ok {
		t.Error("expected 9.12 not to cover the shorter 9.1")
	}
}

func TestMatchHeadingTitleGate(t *testing.T) {
	m, err := Compile("9.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, ok := m.MatchHeading("9.1.1"); ok {
		t.Error("expected bare numbering with no title to be rejected")
	}
	if _, title, ok := m.MatchHeading("9.1.1子项"); !ok || title != "子项" {
		t.Errorf("expected title 子项, got %q (ok=%v)", title, ok)
	}
}

func TestMatchHeadingDigitLengthGate(t *testing.T) {
	m, err := Compile("9.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// More digits than the exemplar: page-number-like, rejected.
	if _, _, ok := m.MatchHeading("9.1.2系统"); ok {
		t.Error("expected candidate with more digits than the exemplar to be rejected")
	}

	deeper, err := Compile("9.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Fewer digits than the exemplar: a shallower heading, tolerated.
	number, _, ok := deeper.MatchHeading("9.2模块")
	if !ok {
		t.Fatal("expected shallower dotted heading to pass the digit gate")
	}
	if number != "9.2" {
		t.Errorf("expected numbering 9.2, got %q", number)
	}
}

func TestMatchHeadingDigitDeltaGate(t *testing.T) {
	m, err := Compile("1）")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, ok := m.MatchHeading("123）条目"); !ok {
		t.Error("expected digit count within delta 2 to pass")
	}
	if _, _, ok := m.MatchHeading("1234）条目"); ok {
		t.Error("expected digit count beyond delta 2 to be rejected")
	}
}

func TestGenericPatternChineseChapter(t *testing.T) {
	m, err := Compile("第一章")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _, _ := m.SmartMatch("第十五章"); !ok {
		t.Errorf("expected 第十五章 to fit the 第一章 scheme (pattern %s)", m.Pattern())
	}
	if ok, _, _ := m.SmartMatch("模块说明"); ok {
		t.Error("expected plain text not to fit the chapter scheme")
	}
}

func TestGenericPatternFoldsTrailingDot(t *testing.T) {
	m, err := Compile("第1条.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _, _ := m.SmartMatch("第1条."); !ok {
		t.Errorf("expected exemplar with trailing dot to round-trip (pattern %s)", m.Pattern())
	}
	if strings.Contains(strings.TrimSuffix(m.Pattern(), `)(.*)$`), `\.[`) {
		// The literal dot belongs to the separator tail, not the body.
		t.Errorf("trailing dot not folded into tail: %s", m.Pattern())
	}
}
