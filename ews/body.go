package ews

import "github.com/beevik/etree"

// BodyType discriminates the two body renderings Exchange supports.
type BodyType string

const (
	BodyTypeText BodyType = "Text"
	BodyTypeHTML BodyType = "HTML"
)

// MessageBody is a message body plus its rendering type. Construct one
// with NewTextBody, NewHTMLBody, or (internally) from a parsed t:Body
// element.
type MessageBody struct {
	content  string
	bodyType BodyType
}

// NewTextBody returns a plain-text body.
func NewTextBody(content string) *MessageBody {
	return &MessageBody{content: content, bodyType: BodyTypeText}
}

// NewHTMLBody returns an HTML body.
func NewHTMLBody(content string) *MessageBody {
	return &MessageBody{content: content, bodyType: BodyTypeHTML}
}

// newBodyFromXML builds a body from a t:Body element. A missing BodyType
// attribute defaults to Text.
func newBodyFromXML(elem *etree.Element) *MessageBody {
	if elem == nil {
		return nil
	}
	return &MessageBody{
		content:  elem.Text(),
		bodyType: BodyType(elem.SelectAttrValue("BodyType", string(BodyTypeText))),
	}
}

func (b *MessageBody) Content() string { return b.content }

func (b *MessageBody) Type() BodyType { return b.bodyType }
