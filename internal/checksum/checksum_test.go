package checksum

import "testing"

func TestSum(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != empty {
		t.Errorf("Sum(nil) = %q, want %q", got, empty)
	}
	if Sum([]byte("a")) != SumString("a") {
		t.Error("Sum and SumString disagree")
	}
	if SumString("a") == SumString("b") {
		t.Error("different inputs share a checksum")
	}
}
