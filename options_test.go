package mandel

import "testing"

func TestWithProgress(t *testing.T) {
	var got [][2]int
	var o renderOptions
	WithProgress(func(written, total int) {
		got = append(got, [2]int{written, total})
	})(&o)

	if o.progress == nil {
		t.Fatal("progress = nil, want callback")
	}
	o.progress(1, 3)
	if len(got) != 1 || got[0] != [2]int{1, 3} {
		t.Errorf("progress calls = %v, want [[1 3]]", got)
	}
}

func TestRenderOptions_Defaults(t *testing.T) {
	var o renderOptions
	if o.progress != nil || o.coordinate != nil {
		t.Error("zero renderOptions should carry no callbacks")
	}
}
