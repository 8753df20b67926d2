package ews

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/beevik/etree"
)

// Message is an email item in the Exchange store. Its identity is the
// (id, change key) pair assigned by the server and refreshed after every
// mutating operation. Body, recipients, sender/from and attachments are
// resolved lazily: the first access on a stored message triggers one full
// re-fetch by id; a local draft returns empty values with no network
// call.
//
// A Message is not safe for concurrent mutation. Callers must serialize
// writes to a shared instance; the change key is the only concurrency
// control, and it is enforced server-side.
type Message struct {
	transport Transport
	logger    *slog.Logger

	id        string
	changeKey string

	parentFolderID        string
	parentFolderChangeKey string

	itemClass string

	subject                string
	sensitivity            string
	importance             string
	size                   int
	isDraft                bool
	isRead                 bool
	isSubmitted            bool
	isResend               bool
	isUnmodified           bool
	hasAttachments         bool
	isReadReceiptRequested bool
	isFromMe               bool
	dateTimeReceived       time.Time
	dateTimeSent           time.Time
	dateTimeCreated        time.Time
	displayCc              string
	displayTo              string
	culture                string
	conversationIndex      string
	conversationTopic      string
	internetMessageID      string

	body         *MessageBody
	toRecipients *MailboxTargetList
	ccRecipients *MailboxTargetList
	replyTo      *MailboxTargetList
	sender       *MailboxTargetList
	from         *MailboxTargetList
	attachments  *AttachmentList

	mimeContent      []byte
	mimeCharacterSet string

	// local attachments queued for creation after the item exists
	pending []*Attachment

	tracking bool
	dirty    map[string]struct{}
}

func newMessage(transport Transport, logger *slog.Logger) *Message {
	if logger == nil {
		logger = slog.Default()
	}
	return &Message{
		transport: transport,
		logger:    logger,
		dirty:     make(map[string]struct{}),
		tracking:  true,
	}
}

// newMessageFromXML builds a message from a t:Message fragment of a
// server response.
func newMessageFromXML(transport Transport, logger *slog.Logger, elem *etree.Element) (*Message, error) {
	m := newMessage(transport, logger)
	if err := m.initFromXML(elem); err != nil {
		return nil, err
	}
	return m, nil
}

// initFromXML populates the message from a t:Message element. Structured
// sub-elements are popped out of the tree first so the generic property
// pass cannot re-discover them as scalar strings; the remaining children
// go through the field mapper with dirty tracking suppressed.
func (m *Message) initFromXML(elem *etree.Element) error {
	m.id, m.changeKey = popIDAndChangeKey(elem, "t:ItemId")
	m.parentFolderID, m.parentFolderChangeKey = popIDAndChangeKey(elem, "t:ParentFolderId")

	if e := popElement(elem, "t:Sender"); e != nil {
		m.sender = newMailboxTargetListFromXML(e)
	}
	if e := popElement(elem, "t:From"); e != nil {
		m.from = newMailboxTargetListFromXML(e)
	}
	if e := popElement(elem, "t:Body"); e != nil {
		m.body = newBodyFromXML(e)
	}
	if e := popElement(elem, "t:ToRecipients"); e != nil {
		m.toRecipients = newMailboxTargetListFromXML(e)
	}
	if e := popElement(elem, "t:CcRecipients"); e != nil {
		m.ccRecipients = newMailboxTargetListFromXML(e)
	}
	if e := popElement(elem, "t:ReplyTo"); e != nil {
		m.replyTo = newMailboxTargetListFromXML(e)
	}
	if e := popElement(elem, "t:Attachments"); e != nil {
		attachments, err := newAttachmentListFromXML(m.transport, e)
		if err != nil {
			return err
		}
		m.attachments = attachments
	}

	fields := buildPropertyMap(elem)
	props, err := extractProperties(elem, fields)
	if err != nil {
		return err
	}
	if err := m.applyProperties(props); err != nil {
		return err
	}

	m.logger.Debug("populated message from XML", "id", m.id)
	m.resetDirtyFields()
	return nil
}

func popIDAndChangeKey(elem *etree.Element, path string) (string, string) {
	e := popElement(elem, path)
	if e == nil {
		return "", ""
	}
	return e.SelectAttrValue("Id", ""), e.SelectAttrValue("ChangeKey", "")
}

// initFromService fetches the message by id and populates it.
func (m *Message) initFromService(ctx context.Context, id string) error {
	elem, err := m.fetchFromService(ctx, id)
	if err != nil {
		return err
	}
	return m.initFromXML(elem)
}

// fetchFromService fetches the full item fragment for id. Zero matching
// fragments is a hard failure, not an empty success.
func (m *Message) fetchFromService(ctx context.Context, id string) (*etree.Element, error) {
	request := NewEnvelope(GetMessageRequest(id, ShapeAllProperties))
	response, err := m.transport.Send(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("fetch message %s: %w", id, err)
	}

	items := response.FindElements("//m:GetItemResponseMessage/m:Items/t:Message")
	if len(items) == 0 {
		return nil, fmt.Errorf("fetch message %s: %w", id, ErrMessageNotFound)
	}
	return items[0], nil
}

// applyProperties bulk-assigns mapped properties with dirty tracking
// suppressed.
func (m *Message) applyProperties(props map[string]any) error {
	tracking := m.tracking
	m.tracking = false
	defer func() { m.tracking = tracking }()

	for key, value := range props {
		if err := m.applyProperty(key, value); err != nil {
			return err
		}
	}
	return nil
}

// applyProperty assigns one mapped property by its normalized name.
// Unknown names are skipped; a value of the wrong type is a hard failure
// naming the offending key and value.
func (m *Message) applyProperty(key string, value any) error {
	fail := func() error { return &PropertyError{Key: key, Value: value} }

	setString := func(dst *string) error {
		s, ok := value.(string)
		if !ok {
			return fail()
		}
		*dst = s
		return nil
	}
	setBool := func(dst *bool) error {
		b, ok := value.(bool)
		if !ok {
			return fail()
		}
		*dst = b
		return nil
	}
	setTime := func(dst *time.Time) error {
		t, ok := value.(time.Time)
		if !ok {
			return fail()
		}
		*dst = t
		return nil
	}

	switch key {
	case "subject":
		return setString(&m.subject)
	case "sensitivity":
		return setString(&m.sensitivity)
	case "importance":
		return setString(&m.importance)
	case "item_class":
		return setString(&m.itemClass)
	case "display_cc":
		return setString(&m.displayCc)
	case "display_to":
		return setString(&m.displayTo)
	case "culture":
		return setString(&m.culture)
	case "conversation_index":
		return setString(&m.conversationIndex)
	case "conversation_topic":
		return setString(&m.conversationTopic)
	case "internet_message_id":
		return setString(&m.internetMessageID)
	case "size":
		n, ok := value.(int)
		if !ok {
			return fail()
		}
		m.size = n
		return nil
	case "is_draft":
		return setBool(&m.isDraft)
	case "is_read":
		return setBool(&m.isRead)
	case "is_submitted":
		return setBool(&m.isSubmitted)
	case "is_resend":
		return setBool(&m.isResend)
	case "is_unmodified":
		return setBool(&m.isUnmodified)
	case "has_attachments":
		return setBool(&m.hasAttachments)
	case "is_read_receipt_requested":
		return setBool(&m.isReadReceiptRequested)
	case "is_from_me":
		return setBool(&m.isFromMe)
	case "date_time_received":
		return setTime(&m.dateTimeReceived)
	case "date_time_sent":
		return setTime(&m.dateTimeSent)
	case "date_time_created":
		return setTime(&m.dateTimeCreated)
	case "parent_folder_id":
		return setString(&m.parentFolderID)
	default:
		// elements with no mapped field on this entity are dropped
		return nil
	}
}

func (m *Message) markDirty(field string) {
	if m.tracking {
		m.dirty[field] = struct{}{}
	}
}

func (m *Message) resetDirtyFields() {
	m.dirty = make(map[string]struct{})
}

// DirtyFields returns the sorted names of locally modified fields since
// the last sync with the server. It scopes partial updates.
func (m *Message) DirtyFields() []string {
	fields := make([]string, 0, len(m.dirty))
	for field := range m.dirty {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Identity and scalar accessors.

func (m *Message) ID() string { return m.id }

func (m *Message) ChangeKey() string { return m.changeKey }

func (m *Message) ParentFolderID() string { return m.parentFolderID }

func (m *Message) ParentFolderChangeKey() string { return m.parentFolderChangeKey }

func (m *Message) ItemClass() string { return m.itemClass }

func (m *Message) Subject() string { return m.subject }

func (m *Message) Sensitivity() string { return m.sensitivity }

func (m *Message) Importance() string { return m.importance }

func (m *Message) Size() int { return m.size }

func (m *Message) IsDraft() bool { return m.isDraft }

func (m *Message) IsRead() bool { return m.isRead }

func (m *Message) IsSubmitted() bool { return m.isSubmitted }

func (m *Message) IsResend() bool { return m.isResend }

func (m *Message) IsUnmodified() bool { return m.isUnmodified }

func (m *Message) HasAttachments() bool { return m.hasAttachments }

func (m *Message) IsReadReceiptRequested() bool { return m.isReadReceiptRequested }

func (m *Message) IsFromMe() bool { return m.isFromMe }

func (m *Message) DateTimeReceived() time.Time { return m.dateTimeReceived }

func (m *Message) DateTimeSent() time.Time { return m.dateTimeSent }

func (m *Message) DateTimeCreated() time.Time { return m.dateTimeCreated }

func (m *Message) DisplayCc() string { return m.displayCc }

func (m *Message) DisplayTo() string { return m.displayTo }

func (m *Message) Culture() string { return m.culture }

func (m *Message) ConversationIndex() string { return m.conversationIndex }

func (m *Message) ConversationTopic() string { return m.conversationTopic }

func (m *Message) InternetMessageID() string { return m.internetMessageID }

// Setters record their field into the dirty set.

func (m *Message) SetSubject(subject string) {
	m.subject = subject
	m.markDirty("subject")
}

func (m *Message) SetSensitivity(sensitivity string) {
	m.sensitivity = sensitivity
	m.markDirty("sensitivity")
}

func (m *Message) SetImportance(importance string) {
	m.importance = importance
	m.markDirty("importance")
}

func (m *Message) SetIsRead(isRead bool) {
	m.isRead = isRead
	m.markDirty("is_read")
}

func (m *Message) SetParentFolderID(folderID string) {
	m.parentFolderID = folderID
	m.markDirty("parent_folder_id")
}

// SetBody assigns an explicit body.
func (m *Message) SetBody(body *MessageBody) {
	m.body = body
	m.markDirty("body")
}

// SetTextBody assigns a plain-text body. Raw string content always maps
// to Text; use SetBody with NewHTMLBody for HTML.
func (m *Message) SetTextBody(content string) {
	m.SetBody(NewTextBody(content))
}

func (m *Message) SetToRecipients(list *MailboxTargetList) {
	m.toRecipients = list
	m.markDirty("to_recipients")
}

func (m *Message) SetCcRecipients(list *MailboxTargetList) {
	m.ccRecipients = list
	m.markDirty("cc_recipients")
}

func (m *Message) SetReplyTo(list *MailboxTargetList) {
	m.replyTo = list
	m.markDirty("reply_to")
}

func (m *Message) SetSender(list *MailboxTargetList) {
	m.sender = list
	m.markDirty("sender")
}

func (m *Message) SetFrom(list *MailboxTargetList) {
	m.from = list
	m.markDirty("from")
}

// Lazy structural fields. A resolved field is never refreshed except by
// an explicit Refresh* call or re-assignment.

// Body returns the message body, fetching it on first access for a stored
// message. A local draft returns nil without a network call.
func (m *Message) Body(ctx context.Context) (*MessageBody, error) {
	if m.body == nil && m.id != "" {
		if err := m.RefreshBody(ctx); err != nil {
			return nil, err
		}
	}
	return m.body, nil
}

// ToRecipients returns the To recipient list, fetching it on first access
// for a stored message. A local draft gets an empty, appendable list.
func (m *Message) ToRecipients(ctx context.Context) (*MailboxTargetList, error) {
	if m.toRecipients == nil {
		if m.id != "" {
			if err := m.RefreshToRecipients(ctx); err != nil {
				return nil, err
			}
		} else {
			m.toRecipients = NewMailboxTargetList()
		}
	}
	return m.toRecipients, nil
}

// CcRecipients returns the Cc recipient list; see ToRecipients.
func (m *Message) CcRecipients(ctx context.Context) (*MailboxTargetList, error) {
	if m.ccRecipients == nil {
		if m.id != "" {
			if err := m.RefreshCcRecipients(ctx); err != nil {
				return nil, err
			}
		} else {
			m.ccRecipients = NewMailboxTargetList()
		}
	}
	return m.ccRecipients, nil
}

// ReplyTo returns the reply-to list; see ToRecipients.
func (m *Message) ReplyTo(ctx context.Context) (*MailboxTargetList, error) {
	if m.replyTo == nil {
		if m.id != "" {
			if err := m.RefreshReplyTo(ctx); err != nil {
				return nil, err
			}
		} else {
			m.replyTo = NewMailboxTargetList()
		}
	}
	return m.replyTo, nil
}

// Sender returns the sender as a 1-element list; see ToRecipients.
func (m *Message) Sender(ctx context.Context) (*MailboxTargetList, error) {
	if m.sender == nil {
		if m.id != "" {
			if err := m.RefreshSender(ctx); err != nil {
				return nil, err
			}
		} else {
			m.sender = NewMailboxTargetList()
		}
	}
	return m.sender, nil
}

// From returns the from address as a 1-element list; see ToRecipients.
func (m *Message) From(ctx context.Context) (*MailboxTargetList, error) {
	if m.from == nil {
		if m.id != "" {
			if err := m.RefreshFrom(ctx); err != nil {
				return nil, err
			}
		} else {
			m.from = NewMailboxTargetList()
		}
	}
	return m.from, nil
}

// Attachments returns the attachment list; see ToRecipients.
func (m *Message) Attachments(ctx context.Context) (*AttachmentList, error) {
	if m.attachments == nil {
		if m.id != "" {
			if err := m.RefreshAttachments(ctx); err != nil {
				return nil, err
			}
		} else {
			m.attachments = NewAttachmentList()
		}
	}
	return m.attachments, nil
}

// RefreshBody re-fetches the message and re-resolves the body.
func (m *Message) RefreshBody(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	if e := popElement(elem, "t:Body"); e != nil {
		m.body = newBodyFromXML(e)
	} else {
		m.body = NewTextBody("")
	}
	return nil
}

// RefreshToRecipients re-fetches the message and re-resolves the To list.
func (m *Message) RefreshToRecipients(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	m.toRecipients = newMailboxTargetListFromXML(popElement(elem, "t:ToRecipients"))
	return nil
}

// RefreshCcRecipients re-fetches the message and re-resolves the Cc list.
func (m *Message) RefreshCcRecipients(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	m.ccRecipients = newMailboxTargetListFromXML(popElement(elem, "t:CcRecipients"))
	return nil
}

// RefreshReplyTo re-fetches the message and re-resolves the reply-to list.
func (m *Message) RefreshReplyTo(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	m.replyTo = newMailboxTargetListFromXML(popElement(elem, "t:ReplyTo"))
	return nil
}

// RefreshSender re-fetches the message and re-resolves the sender.
func (m *Message) RefreshSender(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	m.sender = newMailboxTargetListFromXML(popElement(elem, "t:Sender"))
	return nil
}

// RefreshFrom re-fetches the message and re-resolves the from address.
func (m *Message) RefreshFrom(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	m.from = newMailboxTargetListFromXML(popElement(elem, "t:From"))
	return nil
}

// RefreshAttachments re-fetches the message and re-resolves the
// attachment list.
func (m *Message) RefreshAttachments(ctx context.Context) error {
	elem, err := m.requireFetch(ctx)
	if err != nil {
		return err
	}
	attachments, err := newAttachmentListFromXML(m.transport, popElement(elem, "t:Attachments"))
	if err != nil {
		return err
	}
	m.attachments = attachments
	return nil
}

func (m *Message) requireFetch(ctx context.Context) (*etree.Element, error) {
	if m.id == "" {
		return nil, ErrMissingIdentity
	}
	return m.fetchFromService(ctx, m.id)
}

// Refresh re-fetches the message by id and fully repopulates it,
// including parent folder fields and the dirty set.
func (m *Message) Refresh(ctx context.Context) error {
	if m.id == "" {
		return ErrMissingIdentity
	}
	return m.initFromService(ctx, m.id)
}

// Validate runs pre-flight checks. It is invoked before Create and Send.
func (m *Message) Validate() error {
	return nil
}

// template snapshots the locally known fields for request rendering. It
// never triggers a fetch.
func (m *Message) template() MessageTemplate {
	return MessageTemplate{
		Subject:      m.subject,
		Body:         m.body,
		ToRecipients: m.toRecipients,
		CcRecipients: m.ccRecipients,
		From:         m.from,
		IsRead:       m.isRead,
	}
}

func (m *Message) ref() ItemRef {
	return ItemRef{ID: m.id, ChangeKey: m.changeKey}
}

// Create saves the message into its parent folder without sending it,
// then creates each queued attachment with one call apiece. The sequence
// is not transactional: a failure partway leaves the item created with
// the attachments made so far.
func (m *Message) Create(ctx context.Context) error {
	if m.parentFolderID == "" {
		return fmt.Errorf("create message: %w", ErrMissingFolderID)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	var operation *etree.Element
	if m.mimeContent != nil {
		operation = NewMessageFromMIMERequest(m.mimeContent, m.mimeCharacterSet, m.parentFolderID)
	} else {
		operation = NewMessageSaveOnlyRequest(m.template(), m.parentFolderID)
	}

	response, err := m.transport.Send(ctx, NewEnvelope(operation))
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	if err := responseError(response, "//m:CreateItemResponseMessage"); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	itemID := response.FindElement("//m:CreateItemResponseMessage/m:Items/t:Message/t:ItemId")
	if itemID == nil {
		return fmt.Errorf("create message: no item id in response")
	}
	m.id = itemID.SelectAttrValue("Id", "")
	m.changeKey = itemID.SelectAttrValue("ChangeKey", "")
	m.logger.Debug("created message", "id", m.id, "folder", m.parentFolderID)

	for _, pending := range m.pending {
		if _, err := m.CreateAttachment(ctx, pending.Name(), pending.content); err != nil {
			return err
		}
	}
	m.pending = nil

	m.resetDirtyFields()
	return nil
}

// Update is not supported for messages; Exchange message updates go
// through dedicated flows this client does not implement.
func (m *Message) Update(ctx context.Context) error {
	return fmt.Errorf("update message: %w", ErrUnsupportedOperation)
}

// Delete hard-deletes the message from the store. The local instance
// stays around but is inert afterwards.
func (m *Message) Delete(ctx context.Context) error {
	if m.id == "" || m.changeKey == "" {
		return fmt.Errorf("delete message: %w", ErrMissingIdentity)
	}
	response, err := m.transport.Send(ctx, NewEnvelope(DeleteMessageRequest(m.ref())))
	if err != nil {
		return fmt.Errorf("delete message %s: %w", m.id, err)
	}
	if err := responseError(response, "//m:DeleteItemResponseMessage"); err != nil {
		return fmt.Errorf("delete message %s: %w", m.id, err)
	}
	return nil
}

// Send submits the stored message for delivery.
func (m *Message) Send(ctx context.Context) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if m.id == "" || m.changeKey == "" {
		return fmt.Errorf("send message: %w", ErrMissingIdentity)
	}
	response, err := m.transport.Send(ctx, NewEnvelope(SendMessageRequest(m.ref())))
	if err != nil {
		return fmt.Errorf("send message %s: %w", m.id, err)
	}
	if err := responseError(response, "//m:SendItemResponseMessage"); err != nil {
		return fmt.Errorf("send message %s: %w", m.id, err)
	}
	return nil
}

// Copy copies the message into folderID and repoints this instance at
// the copy, returning the mutated receiver.
func (m *Message) Copy(ctx context.Context, folderID string) (*Message, error) {
	if folderID == "" {
		return nil, fmt.Errorf("copy message: %w", ErrMissingFolderID)
	}
	if m.id == "" || m.changeKey == "" {
		return nil, fmt.Errorf("copy message: %w", ErrMissingIdentity)
	}
	response, err := m.transport.Send(ctx, NewEnvelope(CopyMessageRequest(m.ref(), folderID)))
	if err != nil {
		return nil, fmt.Errorf("copy message %s: %w", m.id, err)
	}
	if err := responseError(response, "//m:CopyItemResponseMessage"); err != nil {
		return nil, fmt.Errorf("copy message %s: %w", m.id, err)
	}
	if itemID := response.FindElement("//m:CopyItemResponseMessage/m:Items/t:Message/t:ItemId"); itemID != nil {
		m.id = itemID.SelectAttrValue("Id", "")
		m.changeKey = itemID.SelectAttrValue("ChangeKey", "")
	}
	return m, nil
}

// Move moves the message into folderID. Exchange issues a fresh change
// key on move, so the instance is refreshed afterwards to observe the new
// identity and parent folder.
func (m *Message) Move(ctx context.Context, folderID string) error {
	if folderID == "" {
		return fmt.Errorf("move message: %w", ErrMissingFolderID)
	}
	if m.id == "" || m.changeKey == "" {
		return fmt.Errorf("move message: %w", ErrMissingIdentity)
	}
	response, err := m.transport.Send(ctx, NewEnvelope(MoveItemRequest(m.ref(), folderID)))
	if err != nil {
		return fmt.Errorf("move message %s: %w", m.id, err)
	}
	if err := responseError(response, "//m:MoveItemResponseMessage"); err != nil {
		return fmt.Errorf("move message %s: %w", m.id, err)
	}
	if itemID := response.FindElement("//m:MoveItemResponseMessage/m:Items/t:Message/t:ItemId"); itemID != nil {
		m.id = itemID.SelectAttrValue("Id", "")
		m.changeKey = itemID.SelectAttrValue("ChangeKey", "")
	}
	// the move must complete before the refresh observes its result
	return m.Refresh(ctx)
}

// Attach queues a local attachment for creation alongside the message.
// For an already stored message use CreateAttachment directly.
func (m *Message) Attach(name string, content []byte) {
	m.pending = append(m.pending, NewAttachment(name, content))
}

// CreateAttachment attaches a file to the stored message. Exchange bumps
// the parent item's change key when an attachment is added, so the
// message identity is refreshed from the response. The returned
// attachment carries the new id; its content and type resolve lazily.
func (m *Message) CreateAttachment(ctx context.Context, name string, content []byte) (*Attachment, error) {
	if m.id == "" {
		return nil, fmt.Errorf("create attachment: %w", ErrMissingIdentity)
	}
	response, err := m.transport.Send(ctx, NewEnvelope(NewAttachmentRequest(m.id, name, content)))
	if err != nil {
		return nil, fmt.Errorf("create attachment on %s: %w", m.id, err)
	}
	if err := responseError(response, "//m:CreateAttachmentResponseMessage"); err != nil {
		return nil, fmt.Errorf("create attachment on %s: %w", m.id, err)
	}

	attachmentID := response.FindElement("//m:CreateAttachmentResponseMessage/m:Attachments/t:FileAttachment/t:AttachmentId")
	if attachmentID == nil {
		return nil, fmt.Errorf("create attachment on %s: %w", m.id, ErrAttachmentNotFound)
	}
	if rootID := attachmentID.SelectAttrValue("RootItemId", ""); rootID != "" {
		m.id = rootID
	}
	if rootKey := attachmentID.SelectAttrValue("RootItemChangeKey", ""); rootKey != "" {
		m.changeKey = rootKey
	}

	return &Attachment{
		transport: m.transport,
		id:        attachmentID.SelectAttrValue("Id", ""),
		name:      name,
	}, nil
}
