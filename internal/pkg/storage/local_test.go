package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoragePut(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStorage(t.TempDir(), "http://127.0.0.1:8080/static")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("stores a blob", func(t *testing.T) {
		key := "aircraft/abc/1-0-panel.jpg"
		if err := st.Put(ctx, key, bytes.NewReader([]byte("blob")), "image/jpeg", PutOptions{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(st.basePath, key))
		if err != nil {
			t.Fatalf("blob not written: %v", err)
		}
		if string(data) != "blob" {
			t.Errorf("blob content mismatch: %q", data)
		}
	})

	t.Run("if-absent rejects existing key", func(t *testing.T) {
		key := "aircraft/abc/2-0-wing.jpg"
		if err := st.Put(ctx, key, bytes.NewReader([]byte("first")), "image/jpeg", PutOptions{IfAbsent: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := st.Put(ctx, key, bytes.NewReader([]byte("second")), "image/jpeg", PutOptions{IfAbsent: true})
		if !errors.Is(err, ErrKeyExists) {
			t.Fatalf("expected ErrKeyExists, got %v", err)
		}

		// Original blob must be untouched
		data, _ := os.ReadFile(filepath.Join(st.basePath, key))
		if string(data) != "first" {
			t.Errorf("existing blob was overwritten: %q", data)
		}
	})

	t.Run("delete of missing key is nil", func(t *testing.T) {
		if err := st.Delete(ctx, "aircraft/abc/never-existed.jpg"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("exists", func(t *testing.T) {
		key := "aircraft/abc/3-0-tail.png"
		if err := st.Put(ctx, key, bytes.NewReader([]byte("x")), "image/png", PutOptions{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ok, err := st.Exists(ctx, key)
		if err != nil || !ok {
			t.Errorf("expected blob to exist, got ok=%v err=%v", ok, err)
		}

		ok, err = st.Exists(ctx, "aircraft/abc/missing.png")
		if err != nil || ok {
			t.Errorf("expected blob to be missing, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("url", func(t *testing.T) {
		got := st.URL("aircraft/abc/1.jpg")
		want := "http://127.0.0.1:8080/static/aircraft/abc/1.jpg"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})
}
