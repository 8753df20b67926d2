package ews

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Request builders. Every function here is a pure mapping from typed
// inputs to a namespaced XML element tree; callers wrap the result with
// NewEnvelope before handing it to a Transport.

// DefaultMaxEntries is the page size used when no batch size is given.
const DefaultMaxEntries = 999999

// BasePointBeginning anchors indexed paging at the start of the folder.
const BasePointBeginning = "Beginning"

// distinguishedFolderIDs is the closed set of well-known folder names
// Exchange resolves symbolically. Matching is case-sensitive and exact;
// anything else is treated as an opaque folder id.
var distinguishedFolderIDs = map[string]struct{}{
	"calendar": {}, "contacts": {}, "deleteditems": {}, "drafts": {},
	"inbox": {}, "journal": {}, "notes": {}, "outbox": {}, "sentitems": {},
	"tasks": {}, "msgfolderroot": {}, "root": {}, "junkemail": {},
	"searchfolders": {}, "voicemail": {}, "recoverableitemsroot": {},
	"recoverableitemsdeletions": {}, "recoverableitemsversions": {},
	"recoverableitemspurges": {}, "archiveroot": {},
	"archivemsgfolderroot": {}, "archivedeleteditems": {},
	"archiverecoverableitemsroot": {}, "Archiverecoverableitemsdeletions": {},
	"Archiverecoverableitemsversions": {}, "Archiverecoverableitemspurges": {},
}

// IsDistinguishedFolderID reports whether folderID names a well-known
// folder.
func IsDistinguishedFolderID(folderID string) bool {
	_, ok := distinguishedFolderIDs[folderID]
	return ok
}

// ItemRef is the (id, change key) pair identifying a stored item. The
// change key is Exchange's optimistic-concurrency token; a stale one
// makes the server reject the call.
type ItemRef struct {
	ID        string
	ChangeKey string
}

// MessageTemplate carries the fields rendered into a t:Message node for
// item creation.
type MessageTemplate struct {
	Subject      string
	Body         *MessageBody
	ToRecipients *MailboxTargetList
	CcRecipients *MailboxTargetList
	From         *MailboxTargetList
	IsRead       bool
}

func folderIDNode(folderID string) *etree.Element {
	if IsDistinguishedFolderID(folderID) {
		e := etree.NewElement("t:DistinguishedFolderId")
		e.CreateAttr("Id", folderID)
		return e
	}
	e := etree.NewElement("t:FolderId")
	e.CreateAttr("Id", folderID)
	return e
}

func itemIDNode(ref ItemRef) *etree.Element {
	e := etree.NewElement("t:ItemId")
	e.CreateAttr("Id", ref.ID)
	if ref.ChangeKey != "" {
		e.CreateAttr("ChangeKey", ref.ChangeKey)
	}
	return e
}

func itemShapeNode(shape BaseShape) *etree.Element {
	e := etree.NewElement("m:ItemShape")
	e.CreateElement("t:BaseShape").SetText(string(shape))
	return e
}

func fieldURINode(fieldURI string) *etree.Element {
	e := etree.NewElement("t:FieldURI")
	e.CreateAttr("FieldURI", fieldURI)
	return e
}

// GetItemRequest fetches one or more items by id.
func GetItemRequest(itemIDs []string, shape BaseShape) *etree.Element {
	root := etree.NewElement("m:GetItem")
	root.AddChild(itemShapeNode(shape))
	ids := root.CreateElement("m:ItemIds")
	for _, id := range itemIDs {
		ids.AddChild(itemIDNode(ItemRef{ID: id}))
	}
	return root
}

// GetMessageRequest extends GetItemRequest with the attachment ids, which
// Exchange omits unless asked for explicitly.
func GetMessageRequest(itemID string, shape BaseShape) *etree.Element {
	root := GetItemRequest([]string{itemID}, shape)
	additional := root.FindElement("m:ItemShape").CreateElement("t:AdditionalProperties")
	additional.AddChild(fieldURINode("item:Attachments"))
	return root
}

// FindMessageItemsOptions parameterizes a paged folder listing.
type FindMessageItemsOptions struct {
	FolderID    string
	DelegateFor string // "act as" delegate mailbox, empty for none
	MaxEntries  int    // 0 means DefaultMaxEntries
	Offset      int
	BasePoint   string    // empty means BasePointBeginning
	Shape       BaseShape // empty means AllProperties
}

// FindMessageItemsRequest lists message items in a folder through an
// indexed page view. The request is always grouped by importance, so the
// response must be unwrapped from Groups/GroupedItems as well as the flat
// Items shape.
func FindMessageItemsRequest(opts FindMessageItemsOptions) *etree.Element {
	if opts.FolderID == "" {
		opts.FolderID = "root"
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.BasePoint == "" {
		opts.BasePoint = BasePointBeginning
	}
	if opts.Shape == "" {
		opts.Shape = ShapeAllProperties
	}

	root := etree.NewElement("m:FindItem")
	root.CreateAttr("Traversal", "Shallow")

	shape := itemShapeNode(opts.Shape)
	shape.CreateElement("t:AdditionalProperties").AddChild(fieldURINode("item:Subject"))
	root.AddChild(shape)

	page := root.CreateElement("m:IndexedPageItemView")
	page.CreateAttr("MaxEntriesReturned", strconv.Itoa(opts.MaxEntries))
	page.CreateAttr("Offset", strconv.Itoa(opts.Offset))
	page.CreateAttr("BasePoint", opts.BasePoint)

	groupBy := root.CreateElement("m:GroupBy")
	groupBy.CreateAttr("Order", "Ascending")
	groupBy.AddChild(fieldURINode("item:Importance"))
	aggregate := groupBy.CreateElement("t:AggregateOn")
	aggregate.CreateAttr("Aggregate", "Maximum")
	aggregate.AddChild(fieldURINode("item:Subject"))

	parents := root.CreateElement("m:ParentFolderIds")
	folder := folderIDNode(opts.FolderID)
	if opts.DelegateFor != "" {
		folder.CreateElement("t:Mailbox").CreateElement("t:EmailAddress").SetText(opts.DelegateFor)
	}
	parents.AddChild(folder)

	return root
}

func mailboxNodes(parent *etree.Element, list *MailboxTargetList) {
	if list == nil {
		return
	}
	for _, target := range list.Targets() {
		parent.CreateElement("t:Mailbox").
			CreateElement("t:EmailAddress").
			SetText(target.EmailAddress())
	}
}

// MessageTemplateNode renders a t:Message item for CreateItem requests.
func MessageTemplateNode(tmpl MessageTemplate) *etree.Element {
	content, bodyType := "", BodyTypeText
	if tmpl.Body != nil {
		content, bodyType = tmpl.Body.Content(), tmpl.Body.Type()
	}

	root := etree.NewElement("t:Message")
	root.CreateElement("t:Subject").SetText(tmpl.Subject)
	body := root.CreateElement("t:Body")
	body.CreateAttr("BodyType", string(bodyType))
	body.SetText(content)
	mailboxNodes(root.CreateElement("t:ToRecipients"), tmpl.ToRecipients)
	mailboxNodes(root.CreateElement("t:CcRecipients"), tmpl.CcRecipients)
	mailboxNodes(root.CreateElement("t:From"), tmpl.From)
	root.CreateElement("t:IsRead").SetText(strconv.FormatBool(tmpl.IsRead))
	return root
}

func createItemRequest(item *etree.Element, folderID, disposition string) *etree.Element {
	root := etree.NewElement("m:CreateItem")
	root.CreateAttr("MessageDisposition", disposition)
	root.CreateElement("m:SavedItemFolderId").AddChild(folderIDNode(folderID))
	root.CreateElement("m:Items").AddChild(item)
	return root
}

// NewMessageSaveOnlyRequest creates a message in folderID without sending
// it.
func NewMessageSaveOnlyRequest(tmpl MessageTemplate, folderID string) *etree.Element {
	return createItemRequest(MessageTemplateNode(tmpl), folderID, "SaveOnly")
}

// NewMessageSendAndSaveCopyRequest creates, sends and files a copy of a
// message. An empty folderID files into sentitems.
func NewMessageSendAndSaveCopyRequest(tmpl MessageTemplate, folderID string) *etree.Element {
	if folderID == "" {
		folderID = "sentitems"
	}
	return createItemRequest(MessageTemplateNode(tmpl), folderID, "SendAndSaveCopy")
}

// NewMessageFromMIMERequest creates a draft from raw MIME content. An
// empty characterSet defaults to UTF-8.
func NewMessageFromMIMERequest(mimeContent []byte, characterSet, folderID string) *etree.Element {
	if characterSet == "" {
		characterSet = "UTF-8"
	}
	message := etree.NewElement("t:Message")
	mime := message.CreateElement("t:MimeContent")
	mime.CreateAttr("CharacterSet", characterSet)
	mime.SetText(base64.StdEncoding.EncodeToString(mimeContent))

	root := etree.NewElement("m:CreateItem")
	root.CreateElement("m:SavedItemFolderId").AddChild(folderIDNode(folderID))
	root.CreateElement("m:Items").AddChild(message)
	return root
}

// DeleteMessageRequest hard-deletes a message. There is no recoverable
// items path at this layer.
func DeleteMessageRequest(ref ItemRef) *etree.Element {
	root := etree.NewElement("m:DeleteItem")
	root.CreateAttr("DeleteType", "HardDelete")
	root.CreateElement("m:ItemIds").AddChild(itemIDNode(ref))
	return root
}

// CopyMessagesRequest copies one batch of messages into folderID with a
// single call.
func CopyMessagesRequest(refs []ItemRef, folderID string) *etree.Element {
	root := etree.NewElement("m:CopyItem")
	root.CreateElement("m:ToFolderId").AddChild(folderIDNode(folderID))
	ids := root.CreateElement("m:ItemIds")
	for _, ref := range refs {
		ids.AddChild(itemIDNode(ref))
	}
	return root
}

// CopyMessageRequest copies a single message into folderID.
func CopyMessageRequest(ref ItemRef, folderID string) *etree.Element {
	return CopyMessagesRequest([]ItemRef{ref}, folderID)
}

// SendMessagesRequest sends one batch of stored messages with a single
// call.
func SendMessagesRequest(refs []ItemRef) *etree.Element {
	root := etree.NewElement("m:SendItem")
	ids := root.CreateElement("m:ItemIds")
	for _, ref := range refs {
		ids.AddChild(itemIDNode(ref))
	}
	return root
}

// SendMessageRequest sends a single stored message.
func SendMessageRequest(ref ItemRef) *etree.Element {
	return SendMessagesRequest([]ItemRef{ref})
}

// MoveItemsRequest moves one batch of items into folderID.
func MoveItemsRequest(refs []ItemRef, folderID string) *etree.Element {
	root := etree.NewElement("m:MoveItem")
	root.CreateElement("m:ToFolderId").AddChild(folderIDNode(folderID))
	ids := root.CreateElement("m:ItemIds")
	for _, ref := range refs {
		ids.AddChild(itemIDNode(ref))
	}
	return root
}

// MoveItemRequest moves a single item into folderID.
func MoveItemRequest(ref ItemRef, folderID string) *etree.Element {
	return MoveItemsRequest([]ItemRef{ref}, folderID)
}

// GetAttachmentRequest fetches an attachment by id.
func GetAttachmentRequest(attachmentID string) *etree.Element {
	root := etree.NewElement("m:GetAttachment")
	root.CreateElement("m:AttachmentIds").
		CreateElement("t:AttachmentId").
		CreateAttr("Id", attachmentID)
	return root
}

// NewAttachmentRequest attaches a file to an existing item. Content is
// carried base64-encoded per the protocol.
func NewAttachmentRequest(parentItemID, name string, content []byte) *etree.Element {
	root := etree.NewElement("m:CreateAttachment")
	root.CreateElement("m:ParentItemId").CreateAttr("Id", parentItemID)
	file := root.CreateElement("m:Attachments").CreateElement("t:FileAttachment")
	file.CreateElement("t:Name").SetText(name)
	file.CreateElement("t:Content").SetText(base64.StdEncoding.EncodeToString(content))
	return root
}

// setFieldNode tells Exchange to overwrite one field of the item.
func setFieldNode(fieldURI string, node *etree.Element) *etree.Element {
	root := etree.NewElement("t:SetItemField")
	root.AddChild(fieldURINode(fieldURI))
	root.CreateElement("t:Message").AddChild(node)
	return root
}

// deleteFieldNode requests deletion of a field, used when the new value
// is empty: overwriting with nothing appends on some field types.
func deleteFieldNode(fieldURI string) *etree.Element {
	root := etree.NewElement("t:DeleteItemField")
	root.AddChild(fieldURINode(fieldURI))
	return root
}

func recipientFieldNode(tag string, list *MailboxTargetList) *etree.Element {
	e := etree.NewElement(tag)
	mailboxNodes(e, list)
	return e
}

// UpdateMessageRequest renders a diff-driven UpdateItem: only fields named
// in changed are included, each as one SetItemField, or a DeleteItemField
// when the new value is empty. Recurrence belongs to calendar items and
// has no message counterpart.
func UpdateMessageRequest(ref ItemRef, tmpl MessageTemplate, changed []string) *etree.Element {
	root := etree.NewElement("m:UpdateItem")
	root.CreateAttr("ConflictResolution", "AlwaysOverwrite")
	root.CreateAttr("MessageDisposition", "SaveOnly")

	change := root.CreateElement("m:ItemChanges").CreateElement("t:ItemChange")
	change.AddChild(itemIDNode(ref))
	updates := change.CreateElement("t:Updates")

	for _, field := range changed {
		switch field {
		case "subject":
			if strings.TrimSpace(tmpl.Subject) == "" {
				updates.AddChild(deleteFieldNode("item:Subject"))
				continue
			}
			subject := etree.NewElement("t:Subject")
			subject.SetText(tmpl.Subject)
			updates.AddChild(setFieldNode("item:Subject", subject))
		case "body":
			if tmpl.Body == nil || tmpl.Body.Content() == "" {
				updates.AddChild(deleteFieldNode("item:Body"))
				continue
			}
			body := etree.NewElement("t:Body")
			body.CreateAttr("BodyType", string(tmpl.Body.Type()))
			body.SetText(tmpl.Body.Content())
			updates.AddChild(setFieldNode("item:Body", body))
		case "is_read":
			isRead := etree.NewElement("t:IsRead")
			isRead.SetText(strconv.FormatBool(tmpl.IsRead))
			updates.AddChild(setFieldNode("message:IsRead", isRead))
		case "to_recipients":
			if tmpl.ToRecipients == nil || tmpl.ToRecipients.Len() == 0 {
				updates.AddChild(deleteFieldNode("message:ToRecipients"))
				continue
			}
			updates.AddChild(setFieldNode("message:ToRecipients",
				recipientFieldNode("t:ToRecipients", tmpl.ToRecipients)))
		case "cc_recipients":
			if tmpl.CcRecipients == nil || tmpl.CcRecipients.Len() == 0 {
				updates.AddChild(deleteFieldNode("message:CcRecipients"))
				continue
			}
			updates.AddChild(setFieldNode("message:CcRecipients",
				recipientFieldNode("t:CcRecipients", tmpl.CcRecipients)))
		case "from":
			if tmpl.From == nil || tmpl.From.Len() == 0 {
				updates.AddChild(deleteFieldNode("message:From"))
				continue
			}
			updates.AddChild(setFieldNode("message:From",
				recipientFieldNode("t:From", tmpl.From)))
		}
	}

	return root
}
