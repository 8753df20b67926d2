package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex-meme-lord/ewsclient/ews"
)

var (
	ErrMissingItemID   = errors.New("item_id is required")
	ErrMissingFolderID = errors.New("folder_id is required")
	ErrMissingSubject  = errors.New("subject is required")
)

// Pagination bounds for folder listings
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Service defines the interface for mailbox business logic
type Service interface {
	ListMessages(ctx context.Context, folder, delegateFor string, limit, offset int) (*ListMessagesResponse, error)
	GetMessage(ctx context.Context, itemID string) (*MessageDetailResponse, error)
	CreateMessage(ctx context.Context, req *CreateMessageRequest) (*MessageDetailResponse, error)
	SendMessage(ctx context.Context, itemID string) error
	DeleteMessage(ctx context.Context, itemID string) error
	MoveMessage(ctx context.Context, itemID, folderID string) error
	CopyMessage(ctx context.Context, itemID, folderID string) (*MessageSummary, error)
}

type service struct {
	messages *ews.MessageService
}

// NewService creates a new mail service backed by an Exchange message
// service
func NewService(messages *ews.MessageService) Service {
	return &service{messages: messages}
}

func sanitizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func sanitizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func (s *service) ListMessages(ctx context.Context, folder, delegateFor string, limit, offset int) (*ListMessagesResponse, error) {
	if folder == "" {
		folder = "inbox"
	}
	limit = sanitizeLimit(limit)
	offset = sanitizeOffset(offset)

	list, err := s.messages.ListMessagesBatch(ctx, folder, delegateFor, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	summaries := make([]MessageSummary, 0, list.Len())
	for _, m := range list.Messages() {
		summaries = append(summaries, summarize(m))
	}
	return &ListMessagesResponse{
		Messages: summaries,
		Folder:   folder,
		Count:    len(summaries),
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *service) GetMessage(ctx context.Context, itemID string) (*MessageDetailResponse, error) {
	if itemID == "" {
		return nil, ErrMissingItemID
	}
	m, err := s.messages.GetMessage(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return detail(ctx, m)
}

func (s *service) CreateMessage(ctx context.Context, req *CreateMessageRequest) (*MessageDetailResponse, error) {
	if req.Subject == "" {
		return nil, ErrMissingSubject
	}
	folderID := req.FolderID
	if folderID == "" {
		folderID = "drafts"
	}

	m, err := s.messages.NewMessage(nil)
	if err != nil {
		return nil, err
	}
	m.SetSubject(req.Subject)
	m.SetParentFolderID(folderID)
	if req.BodyType == string(ews.BodyTypeHTML) {
		m.SetBody(ews.NewHTMLBody(req.Body))
	} else {
		m.SetTextBody(req.Body)
	}
	if len(req.ToRecipients) > 0 {
		to := ews.NewMailboxTargetList()
		for _, addr := range req.ToRecipients {
			to.Add(addr, "")
		}
		m.SetToRecipients(to)
	}
	if len(req.CcRecipients) > 0 {
		cc := ews.NewMailboxTargetList()
		for _, addr := range req.CcRecipients {
			cc.Add(addr, "")
		}
		m.SetCcRecipients(cc)
	}

	if err := m.Create(ctx); err != nil {
		return nil, err
	}
	return detail(ctx, m)
}

func (s *service) SendMessage(ctx context.Context, itemID string) error {
	if itemID == "" {
		return ErrMissingItemID
	}
	m, err := s.messages.GetMessage(ctx, itemID)
	if err != nil {
		return err
	}
	return m.Send(ctx)
}

func (s *service) DeleteMessage(ctx context.Context, itemID string) error {
	if itemID == "" {
		return ErrMissingItemID
	}
	m, err := s.messages.GetMessage(ctx, itemID)
	if err != nil {
		return err
	}
	return m.Delete(ctx)
}

func (s *service) MoveMessage(ctx context.Context, itemID, folderID string) error {
	if itemID == "" {
		return ErrMissingItemID
	}
	if folderID == "" {
		return ErrMissingFolderID
	}
	m, err := s.messages.GetMessage(ctx, itemID)
	if err != nil {
		return err
	}
	return m.Move(ctx, folderID)
}

func (s *service) CopyMessage(ctx context.Context, itemID, folderID string) (*MessageSummary, error) {
	if itemID == "" {
		return nil, ErrMissingItemID
	}
	if folderID == "" {
		return nil, ErrMissingFolderID
	}
	m, err := s.messages.GetMessage(ctx, itemID)
	if err != nil {
		return nil, err
	}
	copied, err := m.Copy(ctx, folderID)
	if err != nil {
		return nil, err
	}
	summary := summarize(copied)
	return &summary, nil
}

func summarize(m *ews.Message) MessageSummary {
	return MessageSummary{
		ID:               m.ID(),
		ChangeKey:        m.ChangeKey(),
		Subject:          m.Subject(),
		IsRead:           m.IsRead(),
		HasAttachments:   m.HasAttachments(),
		DateTimeReceived: m.DateTimeReceived(),
	}
}

func detail(ctx context.Context, m *ews.Message) (*MessageDetailResponse, error) {
	resp := &MessageDetailResponse{MessageSummary: summarize(m)}

	body, err := m.Body(ctx)
	if err != nil {
		return nil, err
	}
	if body != nil {
		resp.Body = body.Content()
		resp.BodyType = string(body.Type())
	}

	from, err := m.From(ctx)
	if err != nil {
		return nil, err
	}
	if target := from.First(); target != nil {
		resp.From = &MailboxResponse{Name: target.Name(), EmailAddress: target.EmailAddress()}
	}

	to, err := m.ToRecipients(ctx)
	if err != nil {
		return nil, err
	}
	resp.ToRecipients = mailboxes(to)

	cc, err := m.CcRecipients(ctx)
	if err != nil {
		return nil, err
	}
	resp.CcRecipients = mailboxes(cc)

	attachments, err := m.Attachments(ctx)
	if err != nil {
		return nil, err
	}
	resp.Attachments = make([]AttachmentResponse, 0, attachments.Len())
	for _, a := range attachments.Attachments() {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{ID: a.ID(), Name: a.Name()})
	}

	return resp, nil
}

func mailboxes(list *ews.MailboxTargetList) []MailboxResponse {
	out := make([]MailboxResponse, 0, list.Len())
	for _, target := range list.Targets() {
		out = append(out, MailboxResponse{Name: target.Name(), EmailAddress: target.EmailAddress()})
	}
	return out
}
