package repository

import (
	"testing"
	"time"
)

func TestNullTime_Scan(t *testing.T) {
	cases := []any{
		"2024-03-05 10:11:12",
		"2024-03-05T10:11:12Z",
		[]byte("2024-03-05 10:11:12"),
		time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC),
	}
	want := time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)
	for _, c := range cases {
		var n nullTime
		if err := n.Scan(c); err != nil {
			t.Fatalf("scan %v: %v", c, err)
		}
		if !n.Valid || !n.Time.Equal(want) {
			t.Fatalf("scan %v: got %+v", c, n)
		}
	}

	var null nullTime
	if err := null.Scan(nil); err != nil || null.Valid || null.Ptr() != nil {
		t.Fatalf("nil should scan to invalid: %+v err=%v", null, err)
	}

	var bad nullTime
	if err := bad.Scan("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
