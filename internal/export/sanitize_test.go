package export

import "testing"

func TestCleanCell(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  多  个  空格  ", "多 个 空格"},
		{"newline becomes space", "第一行\n第二行", "第一行 第二行"},
		{"drops control runes", "abc\x00\x01def", "abcdef"},
		{"keeps cjk punctuation", "要求：支持导出（全量），响应快。", "要求：支持导出（全量），响应快。"},
		{"keeps ascii punctuation", "v1.2-beta (draft), ok.", "v1.2-beta (draft), ok."},
		{"drops decorative brackets", "移除【特殊】符号", "移除特殊符号"},
		{"drops symbols", "价格¥100元", "价格100元"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanCell(tc.in); got != tc.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
