package utils

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		want    []byte
		wantErr bool
	}{
		{name: "bare base64", payload: encoded, want: raw},
		{name: "data URL", payload: "data:image/png;base64," + encoded, want: raw},
		{name: "not base64", payload: "%%% nope %%%", wantErr: true},
		{name: "empty", payload: "", want: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64Image(tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBase64Image: %v", err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("decoded %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"https://cards.example.com", "/qr/1.png", "https://cards.example.com/qr/1.png"},
		{"https://cards.example.com/", "/qr/1.png", "https://cards.example.com/qr/1.png"},
		{"https://cards.example.com", "qr/1.png", "https://cards.example.com/qr/1.png"},
		{"https://cards.example.com/", "qr/1.png", "https://cards.example.com/qr/1.png"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.rel); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}

func TestSniffMIME(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n")
	if got := SniffMIME(pngMagic); got != "image/png" {
		t.Errorf("SniffMIME(png magic) = %q", got)
	}
	if got := SniffMIME([]byte("plain words")); got == "image/png" {
		t.Errorf("SniffMIME(text) should not report an image type, got %q", got)
	}
}
