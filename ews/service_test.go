package ews

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
)

func TestNewMessageFromMIMERequiresFolder(t *testing.T) {
	service := NewMessageService(&mockTransport{}, nil)

	_, err := service.NewMessageFromMIME([]byte("raw"), "")
	if !errors.Is(err, ErrMissingFolderID) {
		t.Fatalf("err = %v, want ErrMissingFolderID", err)
	}
}

func TestCreateMIMEDraft(t *testing.T) {
	mime := []byte("From: a@example.com\r\nSubject: raw\r\n\r\nhi")

	transport := fetchTransport(t, createItemResponse)
	service := NewMessageService(transport, nil)

	m, err := service.NewMessageFromMIME(mime, "drafts")
	if err != nil {
		t.Fatalf("NewMessageFromMIME: %v", err)
	}
	if err := m.Create(context.Background()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.ID() != "AAMkAD-new" {
		t.Errorf("id after create = %q", m.ID())
	}

	content := transport.lastDoc.FindElement("//m:Items/t:Message/t:MimeContent")
	if content == nil {
		t.Fatal("expected the draft to be created from MIME content")
	}
	if got := content.Text(); got != base64.StdEncoding.EncodeToString(mime) {
		t.Error("MIME content not carried base64-encoded")
	}
	if got := content.SelectAttrValue("CharacterSet", ""); got != "UTF-8" {
		t.Errorf("CharacterSet = %q, want UTF-8", got)
	}

	// a MIME create never carries a disposition; the server files it as
	// a draft in the target folder
	createItem := transport.lastDoc.FindElement("//m:CreateItem")
	if got := createItem.SelectAttrValue("MessageDisposition", ""); got != "" {
		t.Errorf("MessageDisposition = %q, want none", got)
	}
}
