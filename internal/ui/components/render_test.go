package components

import (
	"strings"
	"testing"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/scan"
	"github.com/sadopc/stray/internal/ui/style"
)

func TestRenderHelp_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderHelp panicked at width=%d: %v", w, r)
				}
			}()
			RenderHelp(theme, w, 10)
		})
	}
}

func TestRenderConfirmDialog_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	items := []ConfirmItem{{Name: "test.txt", Path: "/tmp/test.txt", Size: 100}}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderConfirmDialog panicked at width=%d: %v", w, r)
				}
			}()
			RenderConfirmDialog(theme, items, w, 10)
		})
	}
}

func TestRenderScanProgress_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	p := scan.Progress{}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderScanProgress panicked at width=%d: %v", w, r)
				}
			}()
			RenderScanProgress(theme, p, 0, w, 10)
		})
	}
}

func TestRenderBreakdown_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	entries := []model.Entry{
		{Path: "/proj/a.ts", Size: 100, Category: model.CatCode},
	}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderBreakdown panicked at width=%d: %v", w, r)
				}
			}()
			RenderBreakdown(theme, entries, w, 10)
		})
	}
}

func TestRenderDuplicates_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	groups := []model.DupGroup{
		{Size: 10, Paths: []string{"/proj/a.png", "/proj/b.png"}},
	}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderDuplicates panicked at width=%d: %v", w, r)
				}
			}()
			RenderDuplicates(theme, groups, "/proj", w, 10)
		})
	}
}

func TestRenderBreakdown_ShowsCategoriesAndTotal(t *testing.T) {
	theme := style.DefaultTheme()
	entries := []model.Entry{
		{Path: "/proj/a.ts", Size: 300, Category: model.CatCode},
		{Path: "/proj/b.ts", Size: 100, Category: model.CatCode},
		{Path: "/proj/logo.png", Size: 50, Category: model.CatMedia},
	}

	out := RenderBreakdown(theme, entries, 80, 20)

	for _, want := range []string{"Code", "Media", "Total", ".ts"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderBreakdown output missing %q", want)
		}
	}
}

func TestRenderBreakdown_Empty(t *testing.T) {
	theme := style.DefaultTheme()
	out := RenderBreakdown(theme, nil, 80, 20)
	if !strings.Contains(out, "no unused files") {
		t.Errorf("RenderBreakdown(nil) = %q, want empty notice", out)
	}
}

func TestRenderDuplicates_OrdersByWastedBytes(t *testing.T) {
	theme := style.DefaultTheme()
	groups := []model.DupGroup{
		{Size: 10, Paths: []string{"/proj/small1.css", "/proj/small2.css"}},
		{Size: 1000, Paths: []string{"/proj/big1.png", "/proj/big2.png", "/proj/big3.png"}},
	}

	out := RenderDuplicates(theme, groups, "/proj", 80, 30)

	bigAt := strings.Index(out, "big1.png")
	smallAt := strings.Index(out, "small1.css")
	if bigAt < 0 || smallAt < 0 {
		t.Fatalf("RenderDuplicates output missing group members:\n%s", out)
	}
	if bigAt > smallAt {
		t.Error("group with the largest wasted size must render first")
	}
	if !strings.Contains(out, "2 duplicate sets") {
		t.Error("summary line missing set count")
	}
}

func TestListView_EmptyAndSmall(t *testing.T) {
	theme := style.DefaultTheme()
	lv := &ListView{Theme: theme, Layout: style.NewLayout(80, 24)}
	out := lv.Render()
	if !strings.Contains(out, "no unused files") {
		t.Errorf("empty ListView render = %q, want empty notice", out)
	}

	lv = &ListView{
		Theme:  theme,
		Layout: style.NewLayout(1, 1),
		Root:   "/proj",
		Items: []model.Entry{
			{Path: "/proj/a.ts", Size: 10},
		},
		Marked:    map[string]bool{},
		Pins:      map[string]bool{},
		TotalSize: 10,
		MaxSize:   10,
	}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ListView.Render panicked at tiny size: %v", r)
		}
	}()
	lv.Render()
}

func TestListView_EnsureVisible(t *testing.T) {
	lv := &ListView{Layout: style.NewLayout(80, 13)} // content height 10
	lv.Cursor = 25
	lv.EnsureVisible()
	if lv.Cursor < lv.Offset || lv.Cursor >= lv.Offset+10 {
		t.Errorf("cursor %d not within [%d, %d)", lv.Cursor, lv.Offset, lv.Offset+10)
	}

	lv.Cursor = 3
	lv.EnsureVisible()
	if lv.Offset > 3 {
		t.Errorf("offset %d leaves cursor 3 above the viewport", lv.Offset)
	}
}

func TestRelToRoot(t *testing.T) {
	tests := []struct {
		root, path string
		want       string
	}{
		{"/proj", "/proj/src/a.ts", "src/a.ts"},
		{"/proj", "/proj/a.ts", "a.ts"},
		{"/proj", "/proj", "/proj"},
		{"/proj", "/other/a.ts", "/other/a.ts"},
		{"/proj", "/project/a.ts", "/project/a.ts"}, // sibling prefix
		{"/", "/a.ts", "a.ts"},
		{"", "/a.ts", "/a.ts"},
	}

	for _, tt := range tests {
		if got := relToRoot(tt.root, tt.path); got != tt.want {
			t.Errorf("relToRoot(%q, %q) = %q, want %q", tt.root, tt.path, got, tt.want)
		}
	}
}
