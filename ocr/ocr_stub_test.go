//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestStubClientReturnsErrNotEnabled(t *testing.T) {
	client, err := New()
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled, got %v", err)
	}
	if client != nil {
		t.Error("Expected nil client from stub New")
	}
}

func TestStubClientNilSafe(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should succeed, got %v", err)
	}
}

func TestStubRecognize(t *testing.T) {
	client := &Client{}
	_, err := client.Recognize(context.Background(), []byte("not an image"))
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled, got %v", err)
	}
	if err := client.SetLanguage("eng"); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled from SetLanguage, got %v", err)
	}
}
