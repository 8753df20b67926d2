package ews

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
)

// EWS namespaces. Every request and response document uses the m/t/s
// prefixes for these, matching the wire convention Exchange itself uses.
const (
	MessagesNS = "http://schemas.microsoft.com/exchange/services/2006/messages"
	TypesNS    = "http://schemas.microsoft.com/exchange/services/2006/types"
	SoapNS     = "http://schemas.xmlsoap.org/soap/envelope/"
)

// ServerVersion is the schema version requested in every SOAP header.
const ServerVersion = "Exchange2010"

// Exchange renders all date-times in UTC. DateTimeFormat emits a literal
// "Z" suffix for UTC values; DateFormat covers date-only fields.
const (
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
	DateFormat     = "2006-01-02"
)

// BaseShape controls how much item detail Exchange returns.
type BaseShape string

const (
	ShapeIDOnly        BaseShape = "IdOnly"
	ShapeDefault       BaseShape = "Default"
	ShapeAllProperties BaseShape = "AllProperties"
)

// Transport posts a SOAP request document to the Exchange server and
// returns the parsed response document. Authentication, connection reuse
// and retry policy are entirely the transport's concern.
type Transport interface {
	Send(ctx context.Context, doc *etree.Document) (*etree.Document, error)
}

// NewEnvelope wraps an operation element in a SOAP envelope with the
// Exchange2010 RequestServerVersion header.
func NewEnvelope(operation *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("s:Envelope")
	env.CreateAttr("xmlns:s", SoapNS)
	env.CreateAttr("xmlns:m", MessagesNS)
	env.CreateAttr("xmlns:t", TypesNS)

	header := env.CreateElement("s:Header")
	version := header.CreateElement("t:RequestServerVersion")
	version.CreateAttr("Version", ServerVersion)

	body := env.CreateElement("s:Body")
	body.AddChild(operation)

	return doc
}

// responseError checks the ResponseClass of the response message at path.
// EWS reports per-message failures inline rather than as SOAP faults.
func responseError(doc *etree.Document, path string) error {
	node := doc.FindElement(path)
	if node == nil {
		return fmt.Errorf("no response message in reply")
	}
	if class := node.SelectAttrValue("ResponseClass", "Success"); class != "Success" {
		code := ""
		if c := node.FindElement("m:ResponseCode"); c != nil {
			code = c.Text()
		}
		return fmt.Errorf("EWS error: %s", code)
	}
	return nil
}

// popElement detaches and returns the first child matching path, or nil.
// Removal keeps the generic property mapper from re-discovering structured
// sub-elements as plain string fields.
func popElement(parent *etree.Element, path string) *etree.Element {
	e := parent.FindElement(path)
	if e != nil {
		parent.RemoveChild(e)
	}
	return e
}
