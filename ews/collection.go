package ews

import (
	"context"
	"fmt"
	"log/slog"
)

// MessageList is an ordered collection of messages produced by a folder
// listing. Batched operations apply one SOAP call across every contained
// message instead of one call per message.
type MessageList struct {
	transport Transport
	logger    *slog.Logger

	folderID    string
	delegateFor string
	maxEntries  int

	messages []*Message
}

// NewMessageList assembles a local list over already-constructed
// messages. Batched operations on such a list use the transport of its
// first message.
func NewMessageList(messages ...*Message) *MessageList {
	return &MessageList{messages: messages}
}

// newMessageListFromService issues a paged find-items request and parses
// the response into messages, preserving server order. An empty folder
// yields an empty list, not an error.
func newMessageListFromService(ctx context.Context, transport Transport, logger *slog.Logger, opts FindMessageItemsOptions) (*MessageList, error) {
	if logger == nil {
		logger = slog.Default()
	}
	list := &MessageList{
		transport:   transport,
		logger:      logger,
		folderID:    opts.FolderID,
		delegateFor: opts.DelegateFor,
		maxEntries:  opts.MaxEntries,
	}

	response, err := transport.Send(ctx, NewEnvelope(FindMessageItemsRequest(opts)))
	if err != nil {
		return nil, fmt.Errorf("list messages in %s: %w", opts.FolderID, err)
	}
	if err := responseError(response, "//m:FindItemResponseMessage"); err != nil {
		return nil, fmt.Errorf("list messages in %s: %w", opts.FolderID, err)
	}

	// requests are grouped by importance, so results usually come back
	// under Groups/GroupedItems rather than the flat Items shape
	items := response.FindElements("//m:FindItemResponseMessage/m:RootFolder/t:Items/t:Message")
	if len(items) == 0 {
		items = response.FindElements("//m:FindItemResponseMessage/m:RootFolder/t:Groups/t:GroupedItems/t:Items/t:Message")
	}

	for _, item := range items {
		message, err := newMessageFromXML(transport, logger, item)
		if err != nil {
			return nil, fmt.Errorf("list messages in %s: %w", opts.FolderID, err)
		}
		list.messages = append(list.messages, message)
	}

	logger.Debug("listed messages", "folder", opts.FolderID, "count", len(list.messages))
	return list, nil
}

func (l *MessageList) Len() int { return len(l.messages) }

// At returns the message at index i.
func (l *MessageList) At(i int) *Message { return l.messages[i] }

// Messages returns the backing slice in server order.
func (l *MessageList) Messages() []*Message { return l.messages }

// Append adds a message to the end of the list.
func (l *MessageList) Append(message *Message) {
	l.messages = append(l.messages, message)
}

// FolderID returns the folder this list was fetched from, if any.
func (l *MessageList) FolderID() string { return l.folderID }

func (l *MessageList) refs() []ItemRef {
	refs := make([]ItemRef, 0, len(l.messages))
	for _, message := range l.messages {
		refs = append(refs, message.ref())
	}
	return refs
}

func (l *MessageList) sendTransport() Transport {
	if l.transport != nil {
		return l.transport
	}
	if len(l.messages) > 0 {
		return l.messages[0].transport
	}
	return nil
}

// Send submits every message in the list for delivery as a single
// batched call.
func (l *MessageList) Send(ctx context.Context) error {
	if l.Len() == 0 {
		return nil
	}
	transport := l.sendTransport()
	if transport == nil {
		return fmt.Errorf("send messages: %w", ErrNoTransport)
	}
	response, err := transport.Send(ctx, NewEnvelope(SendMessagesRequest(l.refs())))
	if err != nil {
		return fmt.Errorf("send messages: %w", err)
	}
	if err := responseError(response, "//m:SendItemResponseMessage"); err != nil {
		return fmt.Errorf("send messages: %w", err)
	}
	return nil
}

// Copy copies every message in the list into folderID as a single batched
// call, then returns a fresh listing of the destination folder. The
// receiver is left untouched; re-querying is the only way to observe the
// copies.
func (l *MessageList) Copy(ctx context.Context, folderID string) (*MessageList, error) {
	if folderID == "" {
		return nil, fmt.Errorf("copy messages: %w", ErrMissingFolderID)
	}
	transport := l.sendTransport()
	if transport == nil {
		return nil, fmt.Errorf("copy messages: %w", ErrNoTransport)
	}
	if l.Len() > 0 {
		response, err := transport.Send(ctx, NewEnvelope(CopyMessagesRequest(l.refs(), folderID)))
		if err != nil {
			return nil, fmt.Errorf("copy messages to %s: %w", folderID, err)
		}
		if err := responseError(response, "//m:CopyItemResponseMessage"); err != nil {
			return nil, fmt.Errorf("copy messages to %s: %w", folderID, err)
		}
	}
	return newMessageListFromService(ctx, transport, l.logger, FindMessageItemsOptions{
		FolderID:    folderID,
		DelegateFor: l.delegateFor,
		MaxEntries:  l.maxEntries,
	})
}

// Move moves every message in the list into folderID as a single batched
// call. The contained messages are not refreshed; their ids and change
// keys are stale afterwards.
func (l *MessageList) Move(ctx context.Context, folderID string) error {
	if folderID == "" {
		return fmt.Errorf("move messages: %w", ErrMissingFolderID)
	}
	if l.Len() == 0 {
		return nil
	}
	transport := l.sendTransport()
	if transport == nil {
		return fmt.Errorf("move messages: %w", ErrNoTransport)
	}
	response, err := transport.Send(ctx, NewEnvelope(MoveItemsRequest(l.refs(), folderID)))
	if err != nil {
		return fmt.Errorf("move messages to %s: %w", folderID, err)
	}
	if err := responseError(response, "//m:MoveItemResponseMessage"); err != nil {
		return fmt.Errorf("move messages to %s: %w", folderID, err)
	}
	return nil
}
