package ews

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/beevik/etree"
)

// Attachment is a file attachment on a message. Content and content type
// are fetched from the server by id on first access; the name, once
// known, is never re-fetched.
type Attachment struct {
	transport Transport

	id          string
	name        string
	contentType string
	content     []byte
	fetched     bool
}

// NewAttachment builds a local, unsaved attachment from explicit fields.
func NewAttachment(name string, content []byte) *Attachment {
	return &Attachment{name: name, content: content, contentType: "", fetched: true}
}

// newAttachmentFromXML parses a t:FileAttachment element. The fragment
// carries the id and name; content is present only on GetAttachment
// responses.
func newAttachmentFromXML(transport Transport, elem *etree.Element) (*Attachment, error) {
	a := &Attachment{transport: transport}
	if e := elem.FindElement("t:AttachmentId"); e != nil {
		a.id = e.SelectAttrValue("Id", "")
	}
	if e := elem.FindElement("t:Name"); e != nil {
		a.name = e.Text()
	}
	if e := elem.FindElement("t:ContentType"); e != nil {
		a.contentType = e.Text()
	}
	if e := elem.FindElement("t:Content"); e != nil {
		content, err := base64.StdEncoding.DecodeString(e.Text())
		if err != nil {
			return nil, fmt.Errorf("attachment %s: decode content: %w", a.id, err)
		}
		a.content = content
		a.fetched = true
	}
	return a, nil
}

func (a *Attachment) ID() string { return a.id }

// Name returns the attachment name as currently known. It never triggers
// a server round-trip; Content populates it for server-side attachments
// whose name is not yet cached.
func (a *Attachment) Name() string { return a.name }

// ContentType returns the MIME type, fetching it alongside the content if
// it is not yet resolved.
func (a *Attachment) ContentType(ctx context.Context) (string, error) {
	if !a.fetched && a.id != "" {
		if err := a.fetch(ctx); err != nil {
			return "", err
		}
	}
	return a.contentType, nil
}

// Content returns the attachment bytes, fetching them by id on first
// access. A local attachment returns its bytes with no network call.
func (a *Attachment) Content(ctx context.Context) ([]byte, error) {
	if !a.fetched && a.id != "" {
		if err := a.fetch(ctx); err != nil {
			return nil, err
		}
	}
	return a.content, nil
}

func (a *Attachment) fetch(ctx context.Context) error {
	request := NewEnvelope(GetAttachmentRequest(a.id))
	response, err := a.transport.Send(ctx, request)
	if err != nil {
		return fmt.Errorf("fetch attachment %s: %w", a.id, err)
	}
	if err := responseError(response, "//m:GetAttachmentResponseMessage"); err != nil {
		return fmt.Errorf("fetch attachment %s: %w", a.id, err)
	}

	elem := response.FindElement("//m:GetAttachmentResponseMessage/m:Attachments/t:FileAttachment")
	if elem == nil {
		return fmt.Errorf("fetch attachment %s: %w", a.id, ErrAttachmentNotFound)
	}

	// the name is cached once known and must not be overwritten here
	if a.name == "" {
		if e := elem.FindElement("t:Name"); e != nil {
			a.name = e.Text()
		}
	}
	if e := elem.FindElement("t:ContentType"); e != nil {
		a.contentType = e.Text()
	}
	if e := elem.FindElement("t:Content"); e != nil {
		content, err := base64.StdEncoding.DecodeString(e.Text())
		if err != nil {
			return fmt.Errorf("fetch attachment %s: decode content: %w", a.id, err)
		}
		a.content = content
	}
	a.fetched = true
	return nil
}

// AttachmentList is an ordered container of attachments in wire order.
type AttachmentList struct {
	transport   Transport
	attachments []*Attachment
}

// NewAttachmentList builds a list from zero or more attachments.
func NewAttachmentList(attachments ...*Attachment) *AttachmentList {
	return &AttachmentList{attachments: attachments}
}

// newAttachmentListFromXML parses a t:Attachments element, preserving
// document order. A nil element yields an empty list.
func newAttachmentListFromXML(transport Transport, elem *etree.Element) (*AttachmentList, error) {
	list := &AttachmentList{transport: transport}
	if elem == nil {
		return list, nil
	}
	for _, child := range elem.ChildElements() {
		a, err := newAttachmentFromXML(transport, child)
		if err != nil {
			return nil, err
		}
		list.attachments = append(list.attachments, a)
	}
	return list, nil
}

func (l *AttachmentList) Len() int { return len(l.attachments) }

// At returns the attachment at index i.
func (l *AttachmentList) At(i int) *Attachment { return l.attachments[i] }

// Attachments returns the backing slice in order.
func (l *AttachmentList) Attachments() []*Attachment { return l.attachments }

// Add constructs a local attachment from explicit fields, appends it and
// returns it.
func (l *AttachmentList) Add(name string, content []byte) *Attachment {
	a := NewAttachment(name, content)
	l.attachments = append(l.attachments, a)
	return a
}
