package qrcode_test

import (
	"bytes"
	"image/png"
	"testing"

	"invaderdeck/internal/qrcode"
)

func TestJoinCode(t *testing.T) {
	u := qrcode.JoinURL("http://deck.local:8080", "abc 1")
	if u != "http://deck.local:8080/api/tables/abc%201" {
		t.Fatalf("join url: got %s", u)
	}

	data, err := qrcode.JoinCode(u, 128)
	if err != nil {
		t.Fatalf("JoinCode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("size: got %v", b)
	}
}
