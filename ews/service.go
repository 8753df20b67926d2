package ews

import (
	"context"
	"fmt"
	"log/slog"
)

// MessageService is the entry point for message operations against one
// Exchange endpoint. It renders requests through the builders and
// delegates transmission to the Transport.
type MessageService struct {
	transport Transport
	logger    *slog.Logger
}

// NewMessageService creates a message service over the given transport.
// A nil logger falls back to slog.Default.
func NewMessageService(transport Transport, logger *slog.Logger) *MessageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageService{transport: transport, logger: logger}
}

// ListMessages lists the messages in folderID. delegateFor optionally
// names a delegate mailbox to act as; pass "" for the authenticated
// mailbox.
func (s *MessageService) ListMessages(ctx context.Context, folderID, delegateFor string) (*MessageList, error) {
	return newMessageListFromService(ctx, s.transport, s.logger, FindMessageItemsOptions{
		FolderID:    folderID,
		DelegateFor: delegateFor,
	})
}

// ListMessagesBatch lists one page of maxEntries messages starting at
// offset. Paging is a plain size/offset window, not a stateful cursor:
// pages are not stable if the mailbox changes between calls.
func (s *MessageService) ListMessagesBatch(ctx context.Context, folderID, delegateFor string, maxEntries, offset int) (*MessageList, error) {
	return newMessageListFromService(ctx, s.transport, s.logger, FindMessageItemsOptions{
		FolderID:    folderID,
		DelegateFor: delegateFor,
		MaxEntries:  maxEntries,
		Offset:      offset,
	})
}

// GetMessage fetches a message by id with all properties.
func (s *MessageService) GetMessage(ctx context.Context, id string) (*Message, error) {
	message := newMessage(s.transport, s.logger)
	if err := message.initFromService(ctx, id); err != nil {
		return nil, err
	}
	return message, nil
}

// NewMessage builds a local, unsaved draft from explicit properties keyed
// by their normalized field names (e.g. "subject", "is_read",
// "parent_folder_id"). Dirty tracking starts after this initial bulk set.
func (s *MessageService) NewMessage(props map[string]any) (*Message, error) {
	message := newMessage(s.transport, s.logger)
	if err := message.applyProperties(props); err != nil {
		return nil, err
	}
	message.resetDirtyFields()
	return message, nil
}

// NewMessageFromMIME builds a draft around raw MIME content to be created
// in folderID. The folder is required up front: deferring the check to
// Create would turn a configuration mistake into a network error.
func (s *MessageService) NewMessageFromMIME(mimeContent []byte, folderID string) (*Message, error) {
	if folderID == "" {
		return nil, fmt.Errorf("new message from MIME: %w", ErrMissingFolderID)
	}
	message := newMessage(s.transport, s.logger)
	message.mimeContent = mimeContent
	message.mimeCharacterSet = "UTF-8"
	message.parentFolderID = folderID
	return message, nil
}
